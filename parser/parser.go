// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package parser constructs lossless concrete syntax trees for JSON.
//
// The parser is a recursive-descent driver over a jcst.Lexer with one token of
// lookahead. It reports the structure of the input to a green.Builder, which
// produces an immutable green tree whose tokens, concatenated in order,
// reproduce the input exactly. Whitespace is kept in the tree as sibling
// tokens interleaved with the structural tokens around it.
//
// Parsing never fails outright. A grammar violation is recorded as a
// *jcst.SyntaxError in the Result, and the parser continues, wrapping any text
// it cannot place in the grammar in a node of kind jcst.Bad. Thus the tree of
// every input, valid or not, round-trips to the original text:
//
//	res := parser.Parse(input)
//	if err := res.Err(); err != nil {
//	   log.Printf("Invalid JSON: %v", err)
//	}
//	root := res.Syntax()
//	fmt.Print(root.Text()) // == input
package parser

import (
	"errors"
	"fmt"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/green"
	"github.com/creachadair/jcst/syntax"
)

// Result is the outcome of parsing an input.
type Result struct {
	// Green is the root of the green tree. It is never nil, and its kind is
	// always jcst.Root.
	Green *green.Node

	// Errors records the grammar violations found in the input, in order of
	// their location.
	Errors []*jcst.SyntaxError
}

// Syntax returns a new syntax view of the tree in r.
func (r *Result) Syntax() *syntax.Node { return syntax.NewRoot(r.Green) }

// OK reports whether the input was free of errors.
func (r *Result) OK() bool { return len(r.Errors) == 0 }

// Err returns nil if the input was free of errors, the only error if there was
// one, or otherwise an error combining all of them.
func (r *Result) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return r.Errors[0]
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// An Option configures a Parser.
type Option func(*Parser)

// WithCache configures the parser to deduplicate identical tokens and small
// subtrees through c. A cache may be shared among parsers.
func WithCache(c *green.Cache) Option { return func(p *Parser) { p.b = green.NewBuilder(c) } }

// StopAtFirstError configures the parser to stop parsing at the first grammar
// violation. The unparsed remainder of the input is wrapped in a single Bad
// node, so the resulting tree still reproduces the input.
func StopAtFirstError() Option { return func(p *Parser) { p.stop = true } }

// Parse parses src and returns the result.
func Parse(src string, opts ...Option) *Result { return New(src, opts...).Parse() }

// ParseBytes parses src and returns the result. The tree does not share
// storage with src.
func ParseBytes(src []byte, opts ...Option) *Result { return Parse(string(src), opts...) }

// A Parser drives a Lexer according to the JSON grammar and reports the
// resulting structure to a green Builder.
type Parser struct {
	lex  *jcst.Lexer
	b    *green.Builder
	errs []*jcst.SyntaxError

	stop   bool // stop at the first error
	halted bool // an error occurred and stop is set
}

// New constructs a parser for src.
func New(src string, opts ...Option) *Parser {
	p := &Parser{lex: jcst.NewLexer(src), b: green.NewBuilder(nil)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse consumes the complete input and returns the result. A Parser can only
// be used once.
func (p *Parser) Parse() *Result {
	p.b.StartNode(jcst.Root)
	p.skipWhitespace()
	if p.peek() != jcst.EOF {
		p.parseElement()
	}

	// Anything remaining after the value is not part of the grammar.
	if k := p.peek(); k != jcst.EOF {
		if !p.halted {
			p.syntaxError(fmt.Sprintf("unexpected %s after value", k.Label()), jcst.EOF)
		}
		p.b.StartNode(jcst.Bad)
		for p.peek() != jcst.EOF {
			p.bump()
		}
		p.b.FinishNode()
	}
	p.b.FinishNode()

	res := &Result{Green: p.b.Finish(), Errors: p.errs}
	if len(p.errs) != 0 {
		idx := jcst.NewLineIndex(p.lex.Source())
		for _, e := range p.errs {
			e.Locate(idx)
		}
	}
	return res
}

// parseElement consumes a single value of any type, with its surrounding
// whitespace. If no value is present, it reports an error without consuming
// anything but whitespace.
func (p *Parser) parseElement() {
	p.skipWhitespace()
	switch k := p.peek(); {
	case k == jcst.LBrace:
		p.parseObject()
	case k == jcst.LSquare:
		p.parseArray()
	case k.IsScalar():
		p.bump()
	case k == jcst.Error:
		p.badTokens()
	default:
		p.syntaxError(fmt.Sprintf("expected value, got %s", k.Label()),
			jcst.LBrace, jcst.LSquare, jcst.String, jcst.Number, jcst.True, jcst.False, jcst.Null)
		return
	}
	p.skipWhitespace()
}

// parseObject consumes an object.
// Precondition: the next token is LBrace.
func (p *Parser) parseObject() {
	p.b.StartNode(jcst.Object)
	defer p.b.FinishNode()

	p.bump() // {
	p.skipWhitespace()
	if p.peek() == jcst.RBrace {
		p.bump()
		return
	}
	p.parseMember()
	for !p.halted {
		p.skipWhitespace()
		switch k := p.peek(); {
		case k == jcst.Comma:
			p.bump()
			p.parseMember()
		case k == jcst.RBrace:
			p.bump()
			return
		case k == jcst.Error:
			p.badTokens()
		case k == jcst.String:
			// Probably a missing comma between members.
			p.syntaxError("", jcst.Comma, jcst.RBrace)
			p.parseMember()
		case k.StartsValue():
			p.syntaxError("", jcst.Comma, jcst.RBrace)
			p.badElement()
		case k == jcst.Colon:
			p.syntaxError("", jcst.Comma, jcst.RBrace)
			p.badToken()
		default:
			// End of input, or a bracket that belongs to an enclosing value.
			p.syntaxError("", jcst.Comma, jcst.RBrace)
			return
		}
	}
}

// parseMember consumes a single "key": value member of an object, with its
// surrounding whitespace.
func (p *Parser) parseMember() {
	if p.halted {
		return
	}
	p.skipWhitespace()
	switch k := p.peek(); {
	case k == jcst.String:
		p.bump()
	case k == jcst.Colon:
		p.syntaxError("", jcst.String) // keep going with the missing key
	case k == jcst.Error:
		p.badTokens()
	case k.StartsValue():
		p.syntaxError("", jcst.String)
		p.badElement()
	default:
		// End of input, or a token the enclosing object handles.
		p.syntaxError("", jcst.String)
		return
	}
	if p.halted {
		return
	}

	p.skipWhitespace()
	if p.peek() == jcst.Colon {
		p.bump()
	} else {
		p.syntaxError("", jcst.Colon)
		if p.halted || !p.peek().StartsValue() {
			return
		}
	}
	p.parseElement()
}

// parseArray consumes an array.
// Precondition: the next token is LSquare.
func (p *Parser) parseArray() {
	p.b.StartNode(jcst.Array)
	defer p.b.FinishNode()

	p.bump() // [
	p.skipWhitespace()
	if p.peek() == jcst.RSquare {
		p.bump()
		return
	}
	p.parseElement()
	for !p.halted {
		p.skipWhitespace()
		switch k := p.peek(); {
		case k == jcst.Comma:
			p.bump()
			p.parseElement()
		case k == jcst.RSquare:
			p.bump()
			return
		case k == jcst.Error:
			p.badTokens()
		case k.StartsValue():
			// Probably a missing comma between elements.
			p.syntaxError("", jcst.Comma, jcst.RSquare)
			p.parseElement()
		case k == jcst.Colon:
			p.syntaxError("", jcst.Comma, jcst.RSquare)
			p.badToken()
		default:
			// End of input, or a brace that belongs to an enclosing value.
			p.syntaxError("", jcst.Comma, jcst.RSquare)
			return
		}
	}
}

// badToken wraps the next token in a Bad node.
func (p *Parser) badToken() {
	if p.halted {
		return
	}
	p.b.StartNode(jcst.Bad)
	p.bump()
	p.b.FinishNode()
}

// badTokens wraps a run of one or more Error tokens in a Bad node, and
// reports an error for the run.
// Precondition: the next token is Error.
func (p *Parser) badTokens() {
	if p.halted {
		return
	}
	pos := p.lex.PeekSpan().Pos
	p.b.StartNode(jcst.Bad)
	for p.peek() == jcst.Error {
		p.bump()
	}
	p.b.FinishNode()
	sp := jcst.Span{Pos: pos, End: p.lex.Span().End}
	p.report(sp, jcst.Error, fmt.Sprintf("invalid token %q", p.lex.Source()[sp.Pos:sp.End]))
}

// badElement parses a value that is not permitted where it occurs, and wraps
// it in a Bad node.
func (p *Parser) badElement() {
	if p.halted {
		return
	}
	p.b.StartNode(jcst.Bad)
	p.parseElement()
	p.b.FinishNode()
}

func (p *Parser) skipWhitespace() {
	for p.peek() == jcst.Whitespace {
		p.bump()
	}
}

func (p *Parser) peek() jcst.Kind { return p.lex.Peek() }

// bump consumes the next token and adds it to the tree.
func (p *Parser) bump() {
	if !p.lex.Next() {
		panic("parser: bump at end of input") // unreachable in a correct parser
	}
	p.b.Token(p.lex.Kind(), p.lex.Text())
}

// syntaxError records a syntax error for the next token. If msg is empty, a
// message is generated from the expected kinds.
func (p *Parser) syntaxError(msg string, want ...jcst.Kind) {
	p.report(p.lex.PeekSpan(), p.peek(), msg, want...)
}

// report records a syntax error at sp. At most one error is recorded for each
// position.
func (p *Parser) report(sp jcst.Span, got jcst.Kind, msg string, want ...jcst.Kind) {
	if p.halted {
		return
	}
	if n := len(p.errs); n != 0 && p.errs[n-1].Span.Pos == sp.Pos {
		return
	}
	p.errs = append(p.errs, jcst.NewSyntaxError(sp, got, msg, want...))
	p.halted = p.stop
}
