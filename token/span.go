// Package token implements a streaming, WHATWG-faithful HTML5 tokenizer.
//
// The tokenizer never allocates token data: every payload is a Span, a
// pair of byte offsets into a buffer the caller owns. Nothing here copies
// bytes out of that buffer. The one string the tokenizer holds, the
// appropriate-end-tag name, is supplied by the host through
// Tokenizer.GotoRcData/GotoRawText (or fixed as "script" by
// GotoScriptData), so it stays valid across buffer swaps between calls to
// Next.
package token

// Span is a half-open [Start, End) byte range into an input buffer.
type Span struct {
	Start, End int
}

// Len reports the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Slice returns the bytes s covers within src. Callers must not retain the
// result past src's lifetime.
func (s Span) Slice(src []byte) []byte {
	return src[s.Start:s.End]
}

func span(start, end int) Span {
	return Span{Start: start, End: end}
}
