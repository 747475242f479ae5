package token

import (
	"testing"

	"gotest.tools/v3/assert"
)

// These mirror the worked scenarios table documented for this tokenizer's
// contract: one test per row, checked against the essential fields the
// table calls out rather than every field on the token.

func TestScenarioSimpleElement(t *testing.T) {
	src := []byte(`<p>hi</p>`)
	got := runAll(src, false)
	assert.Equal(t, len(got), 3)

	assert.Equal(t, got[0].Type, TagToken)
	assert.Equal(t, got[0].Kind, StartTag)
	assert.Equal(t, string(got[0].Name.Slice(src)), "p")

	assert.Equal(t, got[1].Type, TextToken)
	assert.Equal(t, string(got[1].Span.Slice(src)), "hi")

	assert.Equal(t, got[2].Type, TagToken)
	assert.Equal(t, got[2].Kind, EndTag)
	assert.Equal(t, string(got[2].Name.Slice(src)), "p")
}

func TestScenarioSelfClosingVoidTagWholeSpan(t *testing.T) {
	src := []byte(`<img src="a.png"/>`)
	got := runAll(src, false)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Type, TagToken)
	assert.Equal(t, got[0].Kind, StartAttrsSelfTag)
	assert.Equal(t, string(got[0].Span.Slice(src)), string(src))
}

func TestScenarioSelfClosingVoidTagAttrMode(t *testing.T) {
	src := []byte(`<img src="a.png"/>`)
	got := runAll(src, true)
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].Type, TagNameToken)
	assert.Equal(t, got[1].Type, AttrToken)
	assert.Equal(t, string(got[1].Name.Slice(src)), "src")
	assert.Equal(t, string(got[1].Value.Slice(src)), "a.png")
	assert.Equal(t, got[1].Quote, DoubleQuote)
}

func TestScenarioComment(t *testing.T) {
	src := []byte(`<!-- x -->`)
	got := runAll(src, false)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Type, CommentToken)
	assert.Equal(t, string(got[0].Span.Slice(src)), string(src))
}

func TestScenarioDoctype(t *testing.T) {
	src := []byte(`<!DOCTYPE html>`)
	got := runAll(src, false)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Type, DoctypeToken)
	assert.Equal(t, got[0].HasName, true)
	assert.Equal(t, string(got[0].Name.Slice(src)), "html")
	assert.Equal(t, got[0].ForceQuirks, false)
}

func TestScenarioScriptDataFirstEndTagWins(t *testing.T) {
	src := []byte(`<script>let x = "</script>";</script>`)
	z := New()

	tok, ok := z.Next(src)
	assert.Assert(t, ok)
	assert.Equal(t, tok.Type, TagToken)
	assert.Equal(t, tok.Kind, StartTag)
	z.GotoScriptData()

	tok, ok = z.Next(src)
	assert.Assert(t, ok)
	assert.Equal(t, tok.Type, TextToken)
	assert.Equal(t, string(tok.Span.Slice(src)), `let x = "`)

	tok, ok = z.Next(src)
	assert.Assert(t, ok)
	assert.Equal(t, tok.Type, TagToken)
	assert.Equal(t, tok.Kind, EndTag)
	assert.Equal(t, string(tok.Name.Slice(src)), "script")

	// The tokenizer has already emitted the element's closing tag; the
	// host's tree construction (outside this package) is what decides the
	// rest of the bytes are now ordinary markup, not more script data. Feed
	// the remainder back through data state to see the rest of the literal
	// input.
	tok, ok = z.Next(src)
	assert.Assert(t, ok)
	assert.Equal(t, tok.Type, TextToken)
	assert.Equal(t, string(tok.Span.Slice(src)), `";`)

	// Once the element's end tag is tokenized, the tokenizer has already
	// reverted to plain data state (it never re-enters script-data on its
	// own); the trailing "</script>" is parsed as an ordinary end tag.
	tok, ok = z.Next(src)
	assert.Assert(t, ok)
	assert.Equal(t, tok.Type, TagToken)
	assert.Equal(t, tok.Kind, EndTag)
	assert.Equal(t, string(tok.Name.Slice(src)), "script")

	_, ok = z.Next(src)
	assert.Assert(t, !ok)
}

func TestScenarioUnquotedAndBareAttrs(t *testing.T) {
	src := []byte(`<p class=foo bar>`)
	got := runAll(src, true)
	assert.Equal(t, len(got), 3)
	assert.Equal(t, got[0].Type, TagNameToken)

	assert.Equal(t, got[1].Type, AttrToken)
	assert.Equal(t, string(got[1].Name.Slice(src)), "class")
	assert.Equal(t, string(got[1].Value.Slice(src)), "foo")
	assert.Equal(t, got[1].Quote, NoQuote)

	assert.Equal(t, got[2].Type, AttrToken)
	assert.Equal(t, string(got[2].Name.Slice(src)), "bar")
	assert.Equal(t, got[2].HasValue, false)
}

func TestScenarioLessThanInsideAttributeName(t *testing.T) {
	src := []byte(`<x<y>`)
	got := runAll(src, true)
	assert.Equal(t, len(got), 3)

	assert.Equal(t, got[0].Type, TagNameToken)
	assert.Equal(t, string(got[0].Name.Slice(src)), "x")

	assert.Equal(t, got[1].Type, ParseErrorToken)
	assert.Equal(t, got[1].Error, UnexpectedCharacterInAttributeName)

	assert.Equal(t, got[2].Type, AttrToken)
	assert.Equal(t, string(got[2].Name.Slice(src)), "<y")
}

func TestScenarioIncorrectlyClosedComment(t *testing.T) {
	src := []byte(`<!--a--!>`)
	got := runAll(src, false)
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].Type, ParseErrorToken)
	assert.Equal(t, got[0].Error, IncorrectlyClosedComment)
	assert.Equal(t, got[1].Type, CommentToken)
	assert.Equal(t, string(got[1].Span.Slice(src)), string(src))
}

func TestScenarioIncorrectlyOpenedCommentAtEOF(t *testing.T) {
	src := []byte(`<!`)
	got := runAll(src, false)
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].Type, ParseErrorToken)
	assert.Equal(t, got[0].Error, IncorrectlyOpenedComment)
	assert.Equal(t, got[1].Type, CommentToken)
	assert.Equal(t, string(got[1].Span.Slice(src)), string(src))
}
