// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcst

import (
	"fmt"
	"strings"
)

// SyntaxError is the concrete type of errors reporting a grammar violation:
// input that is lexically valid but does not conform to the JSON grammar at
// the point it was checked.
type SyntaxError struct {
	Span     Span    // the offending token; empty at end of input
	Location LineCol // the line and column of Span.Pos
	Got      Kind    // the kind of the offending token
	Want     []Kind  // the kinds that would have been accepted, if known
	Message  string  // a human-readable description of the problem

	err error
}

// NewSyntaxError constructs a SyntaxError for an unexpected token of kind got
// at span, where one of want was required. If msg is empty, a message is
// generated from got and want.
func NewSyntaxError(span Span, got Kind, msg string, want ...Kind) *SyntaxError {
	if msg == "" {
		msg = tokLabel(want, got)
	}
	return &SyntaxError{Span: span, Got: got, Want: want, Message: msg}
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

// Locate populates the Location of e from x, and returns e.
func (e *SyntaxError) Locate(x *LineIndex) *SyntaxError {
	e.Location = x.LineCol(e.Span.Pos)
	return e
}

// tokLabel makes a human-readable summary string for the given token kinds.
func tokLabel(want []Kind, got Kind) string {
	if len(want) == 0 {
		return "unexpected " + got.Label()
	}
	var exp string
	if len(want) == 1 {
		exp = want[0].Label()
	} else {
		last := len(want) - 1
		ss := make([]string, last)
		for i, k := range want[:last] {
			ss[i] = k.Label()
		}
		exp = strings.Join(ss, ", ") + " or " + want[last].Label()
	}
	return fmt.Sprintf("expected %s, got %s", exp, got.Label())
}
