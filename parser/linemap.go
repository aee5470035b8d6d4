package parser

import "sort"

// LineMap converts between byte offsets and 1-based line/column positions.
// It is built once per parse from the source text and shared by anything
// that needs to display a byte-ranged issue in editor coordinates.
type LineMap struct {
	// lineStarts[i] is the byte offset of the first byte of line i+1
	lineStarts []int
	// size is the total length of the source in bytes
	size int
}

// NewLineMap indexes the given source text.
func NewLineMap(src []byte) *LineMap {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineMap{lineStarts: starts, size: len(src)}
}

// Position returns the 1-based line and column for a byte offset. Offsets
// outside the source are clamped to its bounds.
func (lm *LineMap) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > lm.size {
		offset = lm.size
	}
	// Find the last line start <= offset.
	i := sort.Search(len(lm.lineStarts), func(i int) bool {
		return lm.lineStarts[i] > offset
	}) - 1
	return i + 1, offset - lm.lineStarts[i] + 1
}

// Offset returns the byte offset of a 1-based line/column position. Lines
// beyond the source clamp to its end.
func (lm *LineMap) Offset(line, column int) int {
	if line < 1 {
		line = 1
	}
	if line > len(lm.lineStarts) {
		return lm.size
	}
	off := lm.lineStarts[line-1] + column - 1
	if off > lm.size {
		off = lm.size
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Len returns the length of the indexed source in bytes.
func (lm *LineMap) Len() int {
	return lm.size
}

// Lines returns the number of lines in the indexed source.
func (lm *LineMap) Lines() int {
	return len(lm.lineStarts)
}
