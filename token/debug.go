package token

import (
	"github.com/go-json-experiment/json"
)

// debugToken is the JSON-friendly rendering of a Token: byte spans
// resolved against the buffer they were cut from, enum fields rendered
// as their wire strings, so a dump is readable without cross-referencing
// the source bytes by hand.
type debugToken struct {
	Type string `json:"type"`
	Span [2]int `json:"span"`

	Name     string `json:"name,omitempty"`
	DataAtom string `json:"atom,omitempty"`

	Kind string `json:"kind,omitempty"`

	Quote    string `json:"quote,omitempty"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value,omitempty"`

	Extra       string `json:"extra,omitempty"`
	HasName     bool   `json:"has_name,omitempty"`
	ForceQuirks bool   `json:"force_quirks,omitempty"`

	Error string `json:"error,omitempty"`
}

func toDebugToken(tok Token, src []byte) debugToken {
	d := debugToken{
		Type: tok.Type.String(),
		Span: [2]int{tok.Span.Start, tok.Span.End},
	}
	switch tok.Type {
	case TagToken, TagNameToken:
		d.Name = string(tok.Name.Slice(src))
		d.DataAtom = tok.DataAtom.String()
		d.Kind = tok.Kind.String()
	case AttrToken:
		d.Name = string(tok.Name.Slice(src))
		d.HasValue = tok.HasValue
		if tok.HasValue {
			d.Quote = tok.Quote.String()
			d.Value = string(tok.Value.Slice(src))
		}
	case DoctypeToken:
		d.HasName = tok.HasName
		if tok.HasName {
			d.Name = string(tok.Name.Slice(src))
		}
		d.Extra = string(tok.Extra.Slice(src))
		d.ForceQuirks = tok.ForceQuirks
	case ParseErrorToken:
		d.Error = tok.Error.String()
	}
	return d
}

// DumpJSON renders tokens, resolved against the buffer src they were cut
// from, as a JSON array — a tokenizer's direct analogue of the AST dumps
// this module's teacher prints for debugging and golden fixtures.
func DumpJSON(tokens []Token, src []byte) ([]byte, error) {
	dump := make([]debugToken, len(tokens))
	for i, tok := range tokens {
		dump[i] = toDebugToken(tok, src)
	}
	return json.Marshal(dump)
}
