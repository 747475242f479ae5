package token

// State is a tagged variant of the tokenizer's position in the WHATWG
// state graph. Each alternative carries exactly the anchors and
// partially-built token material that alternative's transitions need; this
// is deliberately not one struct with every field always present, so that
// a transition's data dependency is visible in its type.
//
// Closely related WHATWG sub-states that share one payload shape by
// construction — the comment pipeline, the doctype pipeline, and the
// script-data escape/double-escape ladder — are grouped into a single case
// carrying a small phase discriminant alongside that shared payload. In the
// script-data ladder, tagStart/nameStart are meaningful only in the phases
// that track a candidate tag name.
type State interface {
	isState()
}

// mode is which of the five top-level tokenization contexts text scanning
// is currently running in.
type mode int

const (
	modeData mode = iota
	modeRcData
	modeRawText
	modeScriptData
	modePlainText
)

// tagBuilder is the in-flight payload shared by every attribute-pipeline
// state for one tag.
type tagBuilder struct {
	start     int
	kind      TagKind
	nameStart int
	nameEnd   int

	// attrNameStart/attrNameEnd anchor the current attribute's name once
	// it has been finalized, for the states that resolve its value (or
	// lack of one) afterward.
	attrNameStart int
	attrNameEnd   int
}

func (t *tagBuilder) markHasAttrs() {
	switch t.kind {
	case StartTag:
		t.kind = StartAttrsTag
	case StartSelfTag:
		t.kind = StartAttrsSelfTag
	}
}

func (t *tagBuilder) nameSpan() Span { return span(t.nameStart, t.nameEnd) }

// doctypeBuilder is the in-flight payload for the doctype pipeline.
type doctypeBuilder struct {
	start       int
	hasName     bool
	nameStart   int
	nameEnd     int
	extraStart  int
	extraEnd    int
	forceQuirks bool
	sawPublic   bool
	sawSystem   bool
}

type commentPhase int

const (
	commentStart commentPhase = iota
	commentStartDash
	commentBody
	commentLessThanSign
	commentLessThanSignBang
	commentLessThanSignBangDash
	commentLessThanSignBangDashDash
	commentEndDash
	commentEnd
	commentEndBang
)

type doctypePhase int

const (
	doctypeInit doctypePhase = iota
	doctypeBeforeName
	doctypeName
	doctypeAfterName
	doctypeAfterPublicKeyword
	doctypeBeforePublicID
	doctypePublicIDDoubleQuoted
	doctypePublicIDSingleQuoted
	doctypeAfterPublicID
	doctypeBetweenPublicAndSystem
	doctypeAfterSystemKeyword
	doctypeBeforeSystemID
	doctypeSystemIDDoubleQuoted
	doctypeSystemIDSingleQuoted
	doctypeAfterSystemID
	doctypeBogus
)

type cdataPhase int

const (
	cdataBody cdataPhase = iota
	cdataBracket
	cdataEnd
)

type scriptEscPhase int

const (
	scriptEscaped scriptEscPhase = iota
	scriptEscapedDash
	scriptEscapedDashDash
	scriptEscapedLessThanSign
	scriptEscapedEndTagOpen
	scriptEscapedEndTagName
	scriptDoubleEscapeStart
	scriptDoubleEscaped
	scriptDoubleEscapedDash
	scriptDoubleEscapedDashDash
	scriptDoubleEscapedLessThanSign
	scriptDoubleEscapeEnd
)

// sText: data / rcdata / rawtext / plaintext / non-escaped script-data text
// accumulation. start anchors the run that will become a text token.
type sText struct {
	mode  mode
	start int
}

func (sText) isState() {}

// sTagOpen: just consumed '<' in data mode. Any pending text run has
// already been flushed before entering this state, so it carries no payload.
type sTagOpen struct{}

func (sTagOpen) isState() {}

type sEndTagOpen struct{}

func (sEndTagOpen) isState() {}

type sTagName struct {
	tag *tagBuilder
}

func (sTagName) isState() {}

type sBeforeAttrName struct {
	tag *tagBuilder
}

func (sBeforeAttrName) isState() {}

type sAttrName struct {
	tag       *tagBuilder
	nameStart int
}

func (sAttrName) isState() {}

type sAfterAttrName struct {
	tag *tagBuilder
}

func (sAfterAttrName) isState() {}

type sBeforeAttrValue struct {
	tag *tagBuilder
}

func (sBeforeAttrValue) isState() {}

type sAttrValue struct {
	tag        *tagBuilder
	quote      AttrQuote
	valueStart int
}

func (sAttrValue) isState() {}

type sAfterAttrValueQuoted struct {
	tag *tagBuilder
}

func (sAfterAttrValueQuoted) isState() {}

type sSelfClosingStartTag struct {
	tag *tagBuilder
}

func (sSelfClosingStartTag) isState() {}

type sBogusComment struct {
	start int
}

func (sBogusComment) isState() {}

type sMarkupDeclarationOpen struct {
	start int
}

func (sMarkupDeclarationOpen) isState() {}

type sComment struct {
	phase commentPhase
	start int
}

func (sComment) isState() {}

type sDoctype struct {
	phase doctypePhase
	d     *doctypeBuilder
}

func (sDoctype) isState() {}

type sCdata struct {
	phase    cdataPhase
	start    int
	brackets int
}

func (sCdata) isState() {}

// sSpecialEndTagOpen: inside RCDATA/RAWTEXT/non-escaped-script text, just
// consumed '<'; dataStart anchors the text run that precedes it.
type sSpecialEndTagOpen struct {
	mode      mode
	dataStart int
}

func (sSpecialEndTagOpen) isState() {}

// sSpecialEndTagName: consumed "</" and is accumulating ASCII letters,
// deciding whether they form an appropriate end tag.
type sSpecialEndTagName struct {
	mode      mode
	dataStart int
	tagStart  int
	nameStart int
}

func (sSpecialEndTagName) isState() {}

// sScriptEsc covers the entire script-data escape/double-escape ladder.
// dataStart anchors the text run; tagStart/nameStart anchor the current
// candidate end-tag-open sequence when the ladder is inside one.
type sScriptEsc struct {
	phase     scriptEscPhase
	dataStart int
	tagStart  int
	nameStart int
}

func (sScriptEsc) isState() {}

// sEOF is absorbing: once reached, every further call returns "no more".
type sEOF struct{}

func (sEOF) isState() {}
