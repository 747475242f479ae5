// Package diagnostics turns the raw parse_error tokens a tokenizer emits
// into positioned, severity-classified messages a caller can report or
// suppress, the way the teacher's handler/loc packages turn scanner errors
// into positioned diagnostics — but built from scratch here, since the
// teacher's own sourcemap.ChunkBuilder and loc.DiagnosticMessage machinery
// it depends on isn't part of this module's dependency surface.
package diagnostics

import "sort"

// Loc is a resolved line/column position, 1-based to match editor
// conventions.
type Loc struct {
	Line   int
	Column int
}

// LineIndex resolves byte offsets into a source buffer to line/column
// positions without rescanning the buffer for every lookup.
type LineIndex struct {
	src     []byte
	offsets []int // byte offset of the start of each line
}

// NewLineIndex builds an index over src. src must not be mutated for the
// lifetime of the index.
func NewLineIndex(src []byte) *LineIndex {
	offsets := []int{0}
	for i, c := range src {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &LineIndex{src: src, offsets: offsets}
}

// Resolve returns the 1-based line/column of byte offset pos.
func (idx *LineIndex) Resolve(pos int) Loc {
	if pos < 0 {
		pos = 0
	}
	if pos > len(idx.src) {
		pos = len(idx.src)
	}
	line := sort.Search(len(idx.offsets), func(i int) bool { return idx.offsets[i] > pos }) - 1
	if line < 0 {
		line = 0
	}
	col := pos - idx.offsets[line] + 1
	return Loc{Line: line + 1, Column: col}
}

// LineText returns the full text of the line containing pos, with any
// trailing newline stripped.
func (idx *LineIndex) LineText(pos int) string {
	line := sort.Search(len(idx.offsets), func(i int) bool { return idx.offsets[i] > pos }) - 1
	if line < 0 {
		line = 0
	}
	start := idx.offsets[line]
	end := len(idx.src)
	if line+1 < len(idx.offsets) {
		end = idx.offsets[line+1]
	}
	text := idx.src[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return string(text)
}
