package diagnostics

import (
	"strings"

	"github.com/go-html/htmltok/token"
)

// Severity classifies how much a diagnostic should worry a caller,
// mirroring the four-band scheme (error/warning/info/hint) the teacher
// encodes as numeric ranges.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// eofSeverity is the fixed set of error kinds classified as Error rather
// than Warning: truncated input is a harder failure than a recoverable
// malformed construct.
var eofSeverity = map[token.ErrorKind]bool{
	token.EofBeforeTagName:               true,
	token.EofInAttributeValue:            true,
	token.EofInCdata:                     true,
	token.EofInComment:                   true,
	token.EofInDoctype:                   true,
	token.EofInScriptHtmlCommentLikeText: true,
	token.EofInTag:                       true,
}

// Classify assigns a Severity to a parse-error kind. EOF-mid-construct
// kinds are Error; the PLAINTEXT-usage kind is Hint; everything else,
// being a recoverable malformed-markup correction, is Warning.
func Classify(kind token.ErrorKind) Severity {
	switch {
	case eofSeverity[kind]:
		return Error
	case kind == token.DeprecatedAndUnsupported:
		return Hint
	default:
		return Warning
	}
}

// Diagnostic is a positioned, classified rendering of one parse_error
// token.
type Diagnostic struct {
	Kind     token.ErrorKind
	Severity Severity
	Message  string
	File     string
	Loc      Loc
	Length   int
	LineText string
}

// Collector accumulates diagnostics across a tokenization pass and
// resolves their positions lazily, batching the line-index build instead
// of rebuilding it per token.
type Collector struct {
	filename string
	items    []pending
	suppress suppressor
}

type pending struct {
	kind   token.ErrorKind
	span   token.Span
	length int
}

// NewCollector returns a collector that will attribute diagnostics to
// filename (used only for display; the collector does not read files).
func NewCollector(filename string) *Collector {
	return &Collector{filename: filename}
}

// Suppress installs a pattern that will drop any future-resolved
// diagnostic whose message or wire name matches it. An embedding host
// (editor client, formatter) uses this to silence kinds it already
// handles itself, e.g. a permissive PLAINTEXT-aware caller suppressing
// "deprecated_and_unsupported". Returns an error if pattern doesn't
// compile.
func (c *Collector) Suppress(pattern string) error {
	return c.suppress.add(pattern)
}

// Observe records a ParseErrorToken. Tokens of any other type are ignored,
// so a caller can feed every token Next returns without filtering first.
func (c *Collector) Observe(tok token.Token) {
	if tok.Type != token.ParseErrorToken {
		return
	}
	c.items = append(c.items, pending{kind: tok.Error, span: tok.Span, length: tok.Span.Len()})
}

// HasErrors reports whether any recorded diagnostic classifies as Error
// severity, after suppression.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Resolve(nil) {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Resolve resolves every recorded diagnostic's position against src (the
// same buffer the tokenizer ran over) and applies suppression. src may be
// nil (HasErrors passes nil, since it needs only severities); every
// position then resolves to line 1, column 1 with an empty LineText.
func (c *Collector) Resolve(src []byte) []Diagnostic {
	var idx *LineIndex
	if len(c.items) > 0 {
		idx = NewLineIndex(src)
	}
	out := make([]Diagnostic, 0, len(c.items))
	for _, p := range c.items {
		d := Diagnostic{
			Kind:     p.kind,
			Severity: Classify(p.kind),
			Message:  messageFor(p.kind),
			File:     c.filename,
			Length:   p.length,
		}
		if idx != nil {
			d.Loc = idx.Resolve(p.span.Start)
			d.LineText = idx.LineText(p.span.Start)
		}
		if c.suppress.matchesDiagnostic(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// messageFor renders a human-readable message from a kind's wire name,
// e.g. "unexpected_null_character" -> "unexpected null character".
func messageFor(kind token.ErrorKind) string {
	return strings.ReplaceAll(kind.String(), "_", " ")
}
