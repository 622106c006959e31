// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcst_test

import (
	"testing"

	"github.com/creachadair/jcst"
	"github.com/google/go-cmp/cmp"
)

func TestLineIndex(t *testing.T) {
	const input = "ab\né\U0001f600x\r\nend"
	idx := jcst.NewLineIndex(input)

	if got := idx.NumLines(); got != 3 {
		t.Errorf("NumLines: got %d, want 3", got)
	}
	var lines []string
	for i := range 5 {
		lines = append(lines, idx.Line(i))
	}
	if diff := cmp.Diff([]string{"", "ab", "é\U0001f600x", "end", ""}, lines); diff != "" {
		t.Errorf("Lines (-want, +got):\n%s", diff)
	}
	if got := idx.LineStart(3); got != 12 {
		t.Errorf("LineStart(3): got %d, want 12", got)
	}

	tests := []struct {
		offset         int
		pos            string
		display, utf16 int
	}{
		{0, "1:0", 0, 0},
		{2, "1:2", 2, 2},
		{3, "2:0", 0, 0},
		{5, "2:2", 1, 1},  // after the accented letter
		{9, "2:6", 3, 3},  // after the emoji
		{12, "3:0", 0, 0}, // line after CRLF
		{15, "3:3", 3, 3}, // end of input
		{100, "3:3", 3, 3},
		{-5, "1:0", 0, 0},
	}
	for _, tc := range tests {
		if got := idx.LineCol(tc.offset).String(); got != tc.pos {
			t.Errorf("LineCol(%d): got %s, want %s", tc.offset, got, tc.pos)
		}
		if got := idx.DisplayColumn(tc.offset); got != tc.display {
			t.Errorf("DisplayColumn(%d): got %d, want %d", tc.offset, got, tc.display)
		}
		if got := idx.UTF16Column(tc.offset); got != tc.utf16 {
			t.Errorf("UTF16Column(%d): got %d, want %d", tc.offset, got, tc.utf16)
		}
	}

	offsets := []struct {
		line, col, want int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{1, 1, 5},
		{1, 3, 9},
		{1, 100, 11}, // clamped to the end of the line
		{2, 1, 13},
		{-1, 4, 0},
		{5, 0, len(input)},
	}
	for _, tc := range offsets {
		if got := idx.Offset(tc.line, tc.col); got != tc.want {
			t.Errorf("Offset(%d, %d): got %d, want %d", tc.line, tc.col, got, tc.want)
		}
	}
}

func TestSpan(t *testing.T) {
	s := jcst.Span{Pos: 3, End: 7}
	if s.Len() != 4 || s.String() != "3..7" {
		t.Errorf("Span %v: len %d", s, s.Len())
	}
	for _, tc := range []struct {
		offset int
		want   bool
	}{{2, false}, {3, true}, {7, true}, {8, false}} {
		if got := s.Contains(tc.offset); got != tc.want {
			t.Errorf("Contains(%d): got %v, want %v", tc.offset, got, tc.want)
		}
	}
	for _, tc := range []struct {
		t    jcst.Span
		want bool
	}{
		{jcst.Span{Pos: 3, End: 7}, true},
		{jcst.Span{Pos: 4, End: 4}, true},
		{jcst.Span{Pos: 2, End: 5}, false},
		{jcst.Span{Pos: 5, End: 8}, false},
	} {
		if got := s.Covers(tc.t); got != tc.want {
			t.Errorf("Covers(%v): got %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestSyntaxError(t *testing.T) {
	const input = "[1,\n  2 3]"
	idx := jcst.NewLineIndex(input)
	e := jcst.NewSyntaxError(jcst.Span{Pos: 8, End: 9}, jcst.Number, "", jcst.Comma, jcst.RSquare).Locate(idx)
	if got, want := e.Error(), `at 2:4: expected "," or "]", got number`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	e = jcst.NewSyntaxError(jcst.Span{Pos: 0, End: 1}, jcst.Colon, "")
	if got, want := e.Error(), `at 0:0: unexpected ":"`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	e = jcst.NewSyntaxError(jcst.Span{}, jcst.EOF, "custom message", jcst.String)
	if got, want := e.Message, "custom message"; got != want {
		t.Errorf("Message: got %q, want %q", got, want)
	}
}
