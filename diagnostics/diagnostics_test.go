package diagnostics

import (
	"testing"

	"github.com/go-html/htmltok/token"
	"gotest.tools/v3/assert"
)

func TestClassifyEOFKindsAreErrors(t *testing.T) {
	eof := []token.ErrorKind{
		token.EofBeforeTagName,
		token.EofInAttributeValue,
		token.EofInCdata,
		token.EofInComment,
		token.EofInDoctype,
		token.EofInScriptHtmlCommentLikeText,
		token.EofInTag,
	}
	for _, kind := range eof {
		assert.Equal(t, Classify(kind), Error, "kind %v", kind)
	}
}

func TestClassifyDeprecatedIsHint(t *testing.T) {
	assert.Equal(t, Classify(token.DeprecatedAndUnsupported), Hint)
}

func TestClassifyEverythingElseIsWarning(t *testing.T) {
	assert.Equal(t, Classify(token.UnexpectedNullCharacter), Warning)
	assert.Equal(t, Classify(token.MissingEndTagName), Warning)
	assert.Equal(t, Classify(token.IncorrectlyClosedComment), Warning)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, Error.String(), "error")
	assert.Equal(t, Warning.String(), "warning")
	assert.Equal(t, Info.String(), "info")
	assert.Equal(t, Hint.String(), "hint")
	assert.Equal(t, Severity(99).String(), "unknown")
}

func errTok(kind token.ErrorKind, start, end int) token.Token {
	return token.Token{Type: token.ParseErrorToken, Error: kind, Span: token.Span{Start: start, End: end}}
}

func TestCollectorObserveIgnoresNonErrorTokens(t *testing.T) {
	c := NewCollector("doc.html")
	c.Observe(token.Token{Type: token.TextToken, Span: token.Span{Start: 0, End: 3}})
	got := c.Resolve([]byte("abc"))
	assert.Equal(t, len(got), 0)
}

func TestCollectorResolvePositionsAgainstSource(t *testing.T) {
	src := []byte("line one\nline <two\nline three")
	c := NewCollector("doc.html")
	// The '<' before "two" is byte 14, on the second line (0-indexed line 1), column 6.
	c.Observe(errTok(token.UnexpectedCharacterInAttributeName, 14, 15))

	got := c.Resolve(src)
	assert.Equal(t, len(got), 1)
	d := got[0]
	assert.Equal(t, d.Kind, token.UnexpectedCharacterInAttributeName)
	assert.Equal(t, d.Severity, Warning)
	assert.Equal(t, d.File, "doc.html")
	assert.Equal(t, d.Message, "unexpected character in attribute name")
	assert.Equal(t, d.Loc.Line, 2)
	assert.Equal(t, d.Loc.Column, 6)
	assert.Equal(t, d.LineText, "line <two")
}

func TestCollectorHasErrors(t *testing.T) {
	c := NewCollector("doc.html")
	c.Observe(errTok(token.MissingEndTagName, 0, 0))
	assert.Assert(t, !c.HasErrors())

	c.Observe(errTok(token.EofInComment, 5, 5))
	assert.Assert(t, c.HasErrors())
}

func TestCollectorResolveWithNoDiagnosticsAcceptsNilSource(t *testing.T) {
	c := NewCollector("doc.html")
	got := c.Resolve(nil)
	assert.Equal(t, len(got), 0)
}

func TestCollectorSuppressByMessage(t *testing.T) {
	c := NewCollector("doc.html")
	assert.NilError(t, c.Suppress("unexpected null character"))
	c.Observe(errTok(token.UnexpectedNullCharacter, 0, 1))
	c.Observe(errTok(token.MissingEndTagName, 1, 1))

	got := c.Resolve([]byte("x\x00"))
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Kind, token.MissingEndTagName)
}

func TestCollectorSuppressByWireName(t *testing.T) {
	c := NewCollector("doc.html")
	assert.NilError(t, c.Suppress("^deprecated_and_unsupported$"))
	c.Observe(errTok(token.DeprecatedAndUnsupported, 0, 1))

	got := c.Resolve([]byte("x"))
	assert.Equal(t, len(got), 0)
}

func TestCollectorSuppressRejectsBadPattern(t *testing.T) {
	c := NewCollector("doc.html")
	err := c.Suppress("(unclosed")
	assert.ErrorContains(t, err, "bad suppression pattern")
}

func TestMessageForRendersSnakeCaseAsWords(t *testing.T) {
	assert.Equal(t, messageFor(token.UnexpectedNullCharacter), "unexpected null character")
	assert.Equal(t, messageFor(token.EofInTag), "eof in tag")
}
