// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcst

import (
	"iter"

	"go4.org/mem"
)

// A Lexer splits an input text into a sequence of tokens. Each call to Next
// advances the lexer to the next token. Unlike a conventional scanner, the
// lexer never discards or normalizes input: whitespace is reported as a token,
// and text that does not match any token rule is reported with kind Error.
// The concatenated texts of all tokens are exactly the input.
//
//	lx := jcst.NewLexer(input)
//	for lx.Next() {
//	   log.Printf("Next token: %v %q", lx.Kind(), lx.Text())
//	}
type Lexer struct {
	src  string
	kind Kind

	pos, end int // start and end offsets of current token

	// One token of lookahead, valid when pend > end.
	pkind Kind
	pend  int
}

// NewLexer constructs a lexer that consumes src.
func NewLexer(src string) *Lexer { return &Lexer{src: src, kind: Invalid} }

// Next advances l to the next token of the input. It reports false when the
// input has been fully consumed, after which Kind reports EOF.
func (l *Lexer) Next() bool {
	l.pos = l.end
	if l.pos >= len(l.src) {
		l.kind = EOF
		return false
	}
	if l.pend > l.end {
		l.kind, l.end = l.pkind, l.pend
		return true
	}
	k, n := Classify(mem.S(l.src[l.pos:]))
	l.kind, l.end = k, l.pos+n
	return true
}

// Peek reports the kind of the token following the current one, without
// consuming it. At the end of input, Peek returns EOF.
func (l *Lexer) Peek() Kind {
	if l.pend <= l.end {
		k, n := Classify(mem.S(l.src[l.end:]))
		l.pkind, l.pend = k, l.end+n
	}
	return l.pkind
}

// PeekSpan reports the location of the token following the current one.
// At the end of input, the span is empty and located at the end.
func (l *Lexer) PeekSpan() Span {
	l.Peek()
	return Span{Pos: l.end, End: max(l.pend, l.end)}
}

// Kind returns the kind of the current token. Before the first call to Next,
// it returns Invalid.
func (l *Lexer) Kind() Kind { return l.kind }

// Text returns the text of the current token. The result shares storage with
// the input.
func (l *Lexer) Text() string { return l.src[l.pos:l.end] }

// Span returns the location span of the current token.
func (l *Lexer) Span() Span { return Span{Pos: l.pos, End: l.end} }

// Source returns the complete input of l.
func (l *Lexer) Source() string { return l.src }

// All returns a sequence of the kinds and texts of the remaining tokens of l.
// The sequence consumes the lexer, and so is not restartable.
func (l *Lexer) All() iter.Seq2[Kind, string] {
	return func(yield func(Kind, string) bool) {
		for l.Next() {
			if !yield(l.kind, l.Text()) {
				return
			}
		}
	}
}

// A Lexeme is a single token with its location.
type Lexeme struct {
	Kind Kind
	Text string
	Span Span
}

// Tokenize returns all the tokens of src, in order.
func Tokenize(src string) []Lexeme {
	var out []Lexeme
	l := NewLexer(src)
	for l.Next() {
		out = append(out, Lexeme{Kind: l.kind, Text: l.Text(), Span: l.Span()})
	}
	return out
}
