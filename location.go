// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcst

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// Contains reports whether offset lies within s. The end of s is included, so
// that an empty span contains its own position.
func (s Span) Contains(offset int) bool { return s.Pos <= offset && offset <= s.End }

// Covers reports whether s entirely covers t.
func (s Span) Covers(t Span) bool { return s.Pos <= t.Pos && t.End <= s.End }

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// A LineIndex maps byte offsets of a source text to line and column positions.
// A LineIndex is safe for concurrent use by multiple goroutines.
type LineIndex struct {
	src   string
	start []int // offsets of the first byte of each line
}

// NewLineIndex constructs a LineIndex for src.
func NewLineIndex(src string) *LineIndex {
	start := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			start = append(start, i+1)
		}
	}
	return &LineIndex{src: src, start: start}
}

// NumLines reports the number of lines in the source. A source with no
// newlines has one line.
func (x *LineIndex) NumLines() int { return len(x.start) }

// line returns the 0-based line containing offset.
func (x *LineIndex) line(offset int) int {
	offset = min(max(offset, 0), len(x.src))
	i, ok := slices.BinarySearch(x.start, offset)
	if !ok {
		i--
	}
	return i
}

// LineCol returns the line and byte column of offset. Offsets outside the
// source are clamped to its bounds.
func (x *LineIndex) LineCol(offset int) LineCol {
	offset = min(max(offset, 0), len(x.src))
	ln := x.line(offset)
	return LineCol{Line: ln + 1, Column: offset - x.start[ln]}
}

// Location returns the complete location of span.
func (x *LineIndex) Location(span Span) Location {
	return Location{Span: span, First: x.LineCol(span.Pos), Last: x.LineCol(span.End)}
}

// Line returns the text of the 1-based line n, without its line terminator.
func (x *LineIndex) Line(n int) string {
	if n < 1 || n > len(x.start) {
		return ""
	}
	end := len(x.src)
	if n < len(x.start) {
		end = x.start[n] - 1
	}
	text := x.src[x.start[n-1]:end]
	if len(text) != 0 && text[len(text)-1] == '\r' {
		text = text[:len(text)-1]
	}
	return text
}

// LineStart returns the offset of the first byte of the 1-based line n.
func (x *LineIndex) LineStart(n int) int {
	n = min(max(n, 1), len(x.start))
	return x.start[n-1]
}

// prefix returns the portion of the line containing offset that precedes it.
func (x *LineIndex) prefix(offset int) string {
	offset = min(max(offset, 0), len(x.src))
	return x.src[x.start[x.line(offset)]:offset]
}

// DisplayColumn returns the 0-based column of offset measured in monospace
// terminal cells, treating each grapheme cluster as a unit.
func (x *LineIndex) DisplayColumn(offset int) int {
	return uniseg.StringWidth(x.prefix(offset))
}

// UTF16Column returns the 0-based column of offset measured in UTF-16 code
// units, as used by the Language Server Protocol.
func (x *LineIndex) UTF16Column(offset int) int {
	var n int
	for _, r := range x.prefix(offset) {
		if r >= 0x10000 && r <= utf8.MaxRune {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Offset converts a 0-based line and UTF-16 column back to a byte offset.
// Positions past the end of a line are clamped to the end of that line.
func (x *LineIndex) Offset(line, utf16Col int) int {
	if line < 0 {
		return 0
	} else if line >= len(x.start) {
		return len(x.src)
	}
	pos := x.start[line]
	end := len(x.src)
	if line+1 < len(x.start) {
		end = x.start[line+1] - 1
	}
	var n int
	for i, r := range x.src[pos:end] {
		if n >= utf16Col {
			return pos + i
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return end
}
