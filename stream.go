// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcst

import (
	"io"
	"slices"
)

// An Anchor represents a token in source text. The methods of an Anchor
// will report the location, kind, and contents of the token.
type Anchor interface {
	Kind() Kind   // Returns the kind of the token
	Text() string // Returns the raw (undecoded) text of the token
	Span() Span   // Returns the location span of the token
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. Its Text shares storage with the input, and may be
// retained.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  The text of the key is
	// still quoted; the handler is responsible for unescaping key values if the
	// plain string is required (see jcst.Unquote).
	BeginMember(loc Anchor) error

	// End the current object member giving the location and kind of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the kind. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// TriviaHandler is an optional interface that a Handler may implement to
// observe whitespace. If a handler implements this method, Trivia is called
// for each whitespace token in the input. Otherwise whitespace is silently
// discarded.
type TriviaHandler interface {
	Trivia(loc Anchor)
}

// Stream is an event-driven parser that consumes input and delivers events to
// a Handler corresponding with the structure of the input. Unlike the parser
// package, a Stream does not build a tree and stops at the first error.
type Stream struct {
	lex    *Lexer
	idx    *LineIndex // populated on error
	tcomma bool       // allow trailing commas in objects and arrays
}

// NewStream constructs a new Stream that consumes src.
func NewStream(src string) *Stream { return &Stream{lex: NewLexer(src)} }

// NewStreamWithLexer constructs a new Stream that consumes input from lx.
func NewStreamWithLexer(lx *Lexer) *Stream { return &Stream{lex: lx} }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (s *Stream) AllowTrailingCommas(ok bool) { s.tcomma = ok }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			if s.idx == nil {
				s.idx = NewLineIndex(s.lex.Source())
			}
			*errp = err.Locate(s.idx)
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		if !s.nextToken(h) {
			h.EndOfInput(s.lex)
			return nil
		}
		s.parseElement(h)
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if !s.nextToken(h) {
		h.EndOfInput(s.lex)
		return io.EOF
	}
	s.parseElement(h)
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: the current token is not trivia.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.lex.Kind(); tok {
	case LBrace:
		s.checkError(h.BeginObject(s.lex))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.lex))
	case LSquare:
		s.checkError(h.BeginArray(s.lex))
		s.parseElements(h)
		s.checkError(h.EndArray(s.lex))
	case Number, String, True, False, Null:
		s.checkError(h.Value(s.lex))
	default:
		s.syntaxError()
	}
}

// parseMembers consumes zero of more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) {
	tok := s.advance(h, RBrace, String)
	if tok == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.lex))
		s.advance(h, Colon)
		s.advance(h)
		s.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(h, RBrace, Comma)
		s.checkError(h.EndMember(s.lex))
		if tok == RBrace {
			return // end of object
		} else if s.tcomma {
			// If trailing commas are allowed and the next token is a close
			// bracket, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent element.
			if s.advance(h, String, RBrace) == RBrace {
				return // end of object with trailing comma
			}
		} else {
			s.advance(h, String) // advance to next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	if tok := s.advance(h); tok == RSquare {
		return // end of array
	}
	s.parseElement(h)
	for {
		if s.advance(h, RSquare, Comma) == RSquare {
			return // end of array
		}

		// If trailing commas are allowed and the next token is a close bracket,
		// consider this a valid end of the array; otherwise it will fail on the
		// next element
		if next := s.advance(h); s.tcomma && next == RSquare {
			return // end of array with trailing comma
		}
		s.parseElement(h)
	}
}

// nextToken advances to the next non-trivia token, and reports whether one
// was found.
func (s *Stream) nextToken(h Handler) bool {
	for s.lex.Next() {
		if s.lex.Kind() == Whitespace {
			if th, ok := h.(TriviaHandler); ok {
				th.Trivia(s.lex)
			}
			continue
		}
		return true
	}
	return false
}

// advance moves to the next non-trivia token, and requires that it be one of
// the specified kinds. If no kinds are given, any token is accepted, but the
// end of input is not.
func (s *Stream) advance(h Handler, want ...Kind) Kind {
	if !s.nextToken(h) {
		if len(want) == 0 {
			panic(NewSyntaxError(s.lex.Span(), EOF, "expected value, got "+EOF.Label(),
				LBrace, LSquare, String, Number, True, False, Null))
		}
		s.syntaxError(want...)
	}
	tok := s.lex.Kind()
	if len(want) != 0 && !slices.Contains(want, tok) {
		s.syntaxError(want...)
	}
	return tok
}

func (s *Stream) syntaxError(want ...Kind) {
	panic(NewSyntaxError(s.lex.Span(), s.lex.Kind(), "", want...))
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }
