package diagnostics

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestLineIndexResolveFirstLine(t *testing.T) {
	idx := NewLineIndex([]byte("abc\ndef\n"))
	assert.Equal(t, idx.Resolve(0), Loc{Line: 1, Column: 1})
	assert.Equal(t, idx.Resolve(2), Loc{Line: 1, Column: 3})
}

func TestLineIndexResolveSubsequentLines(t *testing.T) {
	idx := NewLineIndex([]byte("abc\ndef\nghi"))
	assert.Equal(t, idx.Resolve(4), Loc{Line: 2, Column: 1})
	assert.Equal(t, idx.Resolve(6), Loc{Line: 2, Column: 3})
	assert.Equal(t, idx.Resolve(8), Loc{Line: 3, Column: 1})
}

func TestLineIndexResolveClampsOutOfRange(t *testing.T) {
	idx := NewLineIndex([]byte("abc"))
	assert.Equal(t, idx.Resolve(-5), Loc{Line: 1, Column: 1})
	assert.Equal(t, idx.Resolve(999), Loc{Line: 1, Column: 4})
}

func TestLineIndexResolveEmptySource(t *testing.T) {
	idx := NewLineIndex([]byte(""))
	assert.Equal(t, idx.Resolve(0), Loc{Line: 1, Column: 1})
}

func TestLineIndexLineTextStripsTrailingNewline(t *testing.T) {
	idx := NewLineIndex([]byte("abc\r\ndef\nghi"))
	assert.Equal(t, idx.LineText(1), "abc")
	assert.Equal(t, idx.LineText(6), "def")
	assert.Equal(t, idx.LineText(10), "ghi")
}

func TestLineIndexLineTextLastLineNoTrailingNewline(t *testing.T) {
	idx := NewLineIndex([]byte("only line, no newline"))
	assert.Equal(t, idx.LineText(0), "only line, no newline")
}
