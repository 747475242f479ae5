package token

import "golang.org/x/net/html/atom"

// TokenType discriminates the closed set of token variants this tokenizer
// can emit. There is no "end of input" variant; Next reports that via its
// boolean return instead.
type TokenType int

const (
	TextToken TokenType = iota
	TagToken
	TagNameToken
	AttrToken
	DoctypeToken
	CommentToken
	ParseErrorToken
)

func (t TokenType) String() string {
	switch t {
	case TextToken:
		return "Text"
	case TagToken:
		return "Tag"
	case TagNameToken:
		return "TagName"
	case AttrToken:
		return "Attr"
	case DoctypeToken:
		return "Doctype"
	case CommentToken:
		return "Comment"
	case ParseErrorToken:
		return "ParseError"
	default:
		return "Invalid"
	}
}

// TagKind fuses a start/end tag's attribute-presence and self-closing
// flags into one discriminant, per the tag-granularity Token contract.
type TagKind int

const (
	StartTag TagKind = iota
	StartAttrsTag
	StartSelfTag
	StartAttrsSelfTag
	EndTag
)

func (k TagKind) String() string {
	switch k {
	case StartTag:
		return "start"
	case StartAttrsTag:
		return "start_attrs"
	case StartSelfTag:
		return "start_self"
	case StartAttrsSelfTag:
		return "start_attrs_self"
	case EndTag:
		return "end"
	default:
		return "invalid"
	}
}

// IsEnd reports whether k denotes an end tag.
func (k TagKind) IsEnd() bool {
	return k == EndTag
}

// HasAttrs reports whether k denotes a start tag known to carry at least
// one attribute.
func (k TagKind) HasAttrs() bool {
	return k == StartAttrsTag || k == StartAttrsSelfTag
}

// IsSelfClosing reports whether k denotes a start tag terminated by "/>".
func (k TagKind) IsSelfClosing() bool {
	return k == StartSelfTag || k == StartAttrsSelfTag
}

// AttrQuote records which quote character, if any, delimited an
// attribute's value.
type AttrQuote int

const (
	NoQuote AttrQuote = iota
	SingleQuote
	DoubleQuote
)

func (q AttrQuote) String() string {
	switch q {
	case SingleQuote:
		return "single"
	case DoubleQuote:
		return "double"
	default:
		return "none"
	}
}

// Token is the observable result of a call to Next. Every byte-offset
// field is a Span into the buffer passed to that call; the tokenizer never
// copies or allocates token data.
//
// Which fields are meaningful depends on Type, mirroring the variant table
// in the tokenization contract: Name for Tag, TagName, Attr and Doctype;
// DataAtom and Kind for Tag and TagName; Quote/Value/HasValue for Attr;
// HasName/Extra/ForceQuirks for Doctype; Error for ParseError.
type Token struct {
	Type TokenType
	Span Span

	Name     Span
	DataAtom atom.Atom

	Kind TagKind

	Quote    AttrQuote
	Value    Span
	HasValue bool

	Extra       Span
	HasName     bool
	ForceQuirks bool

	Error ErrorKind
}

func textToken(span Span) Token {
	return Token{Type: TextToken, Span: span}
}

func tagToken(span, name Span, kind TagKind, src []byte) Token {
	return Token{Type: TagToken, Span: span, Name: name, Kind: kind, DataAtom: lookupAtom(name.Slice(src))}
}

func tagNameToken(name Span, kind TagKind, src []byte) Token {
	return Token{Type: TagNameToken, Span: name, Name: name, Kind: kind, DataAtom: lookupAtom(name.Slice(src))}
}

func attrNameOnlyToken(name Span) Token {
	return Token{Type: AttrToken, Span: name, Name: name, Quote: NoQuote, HasValue: false}
}

func attrToken(span, name Span, quote AttrQuote, value Span) Token {
	return Token{Type: AttrToken, Span: span, Name: name, Quote: quote, Value: value, HasValue: true}
}

func doctypeToken(span Span, hasName bool, name, extra Span, forceQuirks bool) Token {
	return Token{Type: DoctypeToken, Span: span, Name: name, HasName: hasName, Extra: extra, ForceQuirks: forceQuirks}
}

func commentToken(span Span) Token {
	return Token{Type: CommentToken, Span: span}
}

func parseErrorToken(kind ErrorKind, span Span) Token {
	return Token{Type: ParseErrorToken, Span: span, Error: kind}
}

// lookupAtom interns name the way golang.org/x/net/html does, without
// mutating the caller's buffer: atom.Lookup only matches lowercase table
// entries, and tag names in this tokenizer are never case-normalized in
// place (see Token contract), so the lowercased form is built on the stack.
func lookupAtom(name []byte) atom.Atom {
	if len(name) > 34 {
		return 0
	}
	var buf [34]byte
	for i, c := range name {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	return atom.Lookup(buf[:len(name)])
}
