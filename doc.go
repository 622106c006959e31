// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jcst implements a lossless lexer and concrete syntax tree for JSON.
//
// Unlike a conventional JSON decoder, the types in this module preserve every
// byte of the input, including whitespace and text that is not valid JSON.
// This makes them suitable for tools that must report precise locations or
// reproduce their input exactly, such as formatters, linters, and editors.
//
// # Lexing
//
// The Lexer type splits an input string into tokens. Each token has a Kind,
// and the concatenated texts of all tokens are exactly the input. Whitespace
// is reported as a token of kind Whitespace, and text that does not match any
// token rule is reported as a token of kind Error, one rune at a time:
//
//	lx := jcst.NewLexer(input)
//	for lx.Next() {
//	   log.Printf("Next token: %v %q at %v", lx.Kind(), lx.Text(), lx.Span())
//	}
//
// The Classify function exposes the underlying longest-match rule for a
// single token, and Tokenize returns all the tokens of an input at once.
//
// # Trees
//
// The green, syntax, and parser packages build a concrete syntax tree from
// the output of the lexer. The green package defines the immutable tree and a
// Builder to construct it; the syntax package provides a position-aware view
// for navigation; and the parser package implements the JSON grammar with
// error recovery:
//
//	res := parser.Parse(input)
//	for _, err := range res.Errors {
//	   log.Printf("Error: %v", err)
//	}
//	fmt.Println(syntax.Dump(res.Syntax()))
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON. The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *jcst.SyntaxError is returned.
//
// Construct a Stream from a string, and call its Parse method. Parse returns
// nil if the input was fully processed without error. If a Handler method
// reports an error, parsing stops and that error is returned.
//
//	s := jcst.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available:
//
//	if err := s.ParseOne(handle); err == io.EOF {
//	   log.Print("No more input")
//	} else if err != nil {
//	   log.Printf("ParseOne failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. See the comments on the Handler type for the meaning
// of each method's anchor value. A handler that also implements
// TriviaHandler is notified of whitespace between tokens.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported.
//
// # Locations
//
// Tokens and tree elements report their locations as byte-offset Spans. A
// LineIndex converts offsets to line and column positions, measured in bytes,
// terminal display cells, or UTF-16 code units.
package jcst
