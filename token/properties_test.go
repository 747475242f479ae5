package token

import (
	"testing"

	"gotest.tools/v3/assert"
)

// corpus is a fixed set of inputs chosen to exercise every mode group and
// several malformed-markup paths at once, used to check the cross-cutting
// invariants rather than any one token's shape.
var corpus = []string{
	``,
	`hello world`,
	`<p>hi</p>`,
	`<img src="a.png"/>`,
	`<!-- x -->`,
	`<!DOCTYPE html>`,
	`<script>let x = "</script>";</script>`,
	`<p class=foo bar>`,
	`<x<y>`,
	`<!--a--!>`,
	`<!`,
	`<!weird>`,
	`<?xml?>`,
	`<![CDATA[hi]]>`,
	"a\x00b",
	`<`,
	`</>`,
	`<p class="a" id=b disabled>`,
	`<title>&amp;not really an entity</title>`,
	"\x00\x00\x00",
	`<!doctype>`,
	`text <b>bold</b> more <i>italics</i> end`,
}

// runWithSrc is like runAll but also returns the byte slice used, so callers
// can re-check spans against it without recomputing.
func runWithSrc(in string) ([]Token, []byte) {
	src := []byte(in)
	return runAll(src, false), src
}

func TestPropertyBoundedSpans(t *testing.T) {
	for _, in := range corpus {
		toks, src := runWithSrc(in)
		for i, tok := range toks {
			assert.Assert(t, tok.Span.Start >= 0, "case %q token %d start %d", in, i, tok.Span.Start)
			assert.Assert(t, tok.Span.End <= len(src), "case %q token %d end %d > len %d", in, i, tok.Span.End, len(src))
			assert.Assert(t, tok.Span.Start <= tok.Span.End, "case %q token %d inverted span", in, i)
		}
	}
}

func TestPropertyMonotoneSpans(t *testing.T) {
	for _, in := range corpus {
		toks, _ := runWithSrc(in)
		prevStart := -1
		for i, tok := range toks {
			if tok.Type == ParseErrorToken {
				continue
			}
			assert.Assert(t, tok.Span.Start >= prevStart, "case %q token %d start %d < previous %d", in, i, tok.Span.Start, prevStart)
			prevStart = tok.Span.Start
		}
	}
}

func TestPropertyCoverage(t *testing.T) {
	// Full byte-for-byte coverage (minus collapsible whitespace) is not
	// checked by any test in this package. Here we check only the weaker,
	// always-true property: the last token emitted for each corpus input
	// ends within the input.
	for _, in := range corpus {
		toks, src := runWithSrc(in)
		if len(toks) == 0 {
			continue
		}
		last := toks[len(toks)-1]
		assert.Assert(t, last.Span.End <= len(src), "case %q last span end %d > len %d", in, last.Span.End, len(src))
	}
}

func TestPropertyDeterminism(t *testing.T) {
	for _, in := range corpus {
		a, src := runWithSrc(in)
		b := runAll(append([]byte(nil), src...), false)
		assert.DeepEqual(t, types(a), types(b))
		for i := range a {
			assert.Equal(t, a[i].Span, b[i].Span, "case %q token %d", in, i)
		}
	}
}

func TestPropertyTermination(t *testing.T) {
	for _, in := range corpus {
		z := New()
		src := []byte(in)
		calls := 0
		limit := len(src) + 16
		for {
			_, ok := z.Next(src)
			calls++
			if !ok {
				break
			}
			assert.Assert(t, calls <= limit, "case %q exceeded call budget", in)
		}
		assert.Assert(t, calls <= limit, "case %q took %d calls for %d bytes", in, calls, len(src))
	}
}

func TestPropertyNoInflightStateAfterEOF(t *testing.T) {
	for _, in := range corpus {
		z := New()
		src := []byte(in)
		for {
			_, ok := z.Next(src)
			if !ok {
				break
			}
		}
		assert.Assert(t, z.AtEOF())
		for i := 0; i < 3; i++ {
			_, ok := z.Next(src)
			assert.Assert(t, !ok)
			assert.Assert(t, z.AtEOF())
		}
	}
}

func TestPropertyEmitThenResliceRoundTrip(t *testing.T) {
	cases := []string{
		`<p>hi</p>`,
		`<!-- x -->`,
		`text <b>bold</b> more`,
	}
	for _, in := range cases {
		toks, src := runWithSrc(in)
		for _, tok := range toks {
			switch tok.Type {
			case TagToken:
				want := string(tok.Name.Slice(src))
				assert.Assert(t, len(want) > 0, "case %q empty tag name", in)
			case TextToken, CommentToken:
				// Reslicing is a no-op identity by construction (Span.Slice
				// just indexes src); what matters is the bytes are the
				// literal run, which the scenario tests already pin down
				// per-input. Here we only check the slice doesn't panic and
				// stays within bounds, already covered by the bounded-spans
				// property above.
				_ = tok.Span.Slice(src)
			}
		}
	}
}

func TestPropertyReturnAttrsReconstructsSourceOrder(t *testing.T) {
	src := []byte(`<p class="a" id=b disabled>`)
	got := runAll(src, true)
	assert.Equal(t, got[0].Type, TagNameToken)
	var names []string
	for _, tok := range got[1:] {
		assert.Equal(t, tok.Type, AttrToken)
		names = append(names, string(tok.Name.Slice(src)))
	}
	assert.DeepEqual(t, names, []string{"class", "id", "disabled"})
}
