// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package green implements the immutable, position-independent layer of a
// concrete syntax tree for JSON.
//
// A green tree consists of nodes and tokens. A Token is a leaf holding a kind
// and its exact source text. A Node holds a kind and an ordered list of
// children, each either a Token or a Node, and caches the total length of its
// text. Green values carry no positions and no parent links, so an identical
// subtree may be shared by reference within a tree or across trees.
//
// Once constructed, green values are never modified, and are safe for
// concurrent use by multiple goroutines. Use a Builder to construct a tree,
// and package syntax to navigate it with absolute positions.
package green

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/creachadair/jcst"
)

// An Element is a child of a Node. The concrete type is either *Token or
// *Node.
type Element interface {
	// Kind reports the syntactic kind of the element.
	Kind() jcst.Kind

	// TextLen reports the length in bytes of the text spanned by the element.
	TextLen() int

	// Text returns the complete text spanned by the element.
	Text() string

	// WriteTo writes the text spanned by the element to w.
	WriteTo(w io.Writer) (int64, error)

	isElement()
}

// A Token is a leaf of a green tree.
type Token struct {
	kind jcst.Kind
	text string
}

// NewToken constructs a token of the given kind and text.
// It panics if kind is not a token kind.
func NewToken(kind jcst.Kind, text string) *Token {
	if !kind.IsToken() {
		panic(fmt.Sprintf("green: %v is not a token kind", kind))
	}
	return &Token{kind: kind, text: text}
}

func (*Token) isElement() {}

// Kind reports the kind of t.
func (t *Token) Kind() jcst.Kind { return t.kind }

// Text returns the text of t.
func (t *Token) Text() string { return t.text }

// TextLen reports the length of the text of t in bytes.
func (t *Token) TextLen() int { return len(t.text) }

// WriteTo writes the text of t to w.
func (t *Token) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.text)
	return int64(n), err
}

func (t *Token) String() string { return fmt.Sprintf("%v %q", t.kind, t.text) }

// A Node is an interior node of a green tree.
type Node struct {
	kind     jcst.Kind
	textLen  int
	children []Element
}

// NewNode constructs a node of the given kind with the specified children.
// The node takes ownership of the children slice.
// It panics if kind is not a node kind.
func NewNode(kind jcst.Kind, children []Element) *Node {
	if !kind.IsNode() {
		panic(fmt.Sprintf("green: %v is not a node kind", kind))
	}
	var n int
	for _, c := range children {
		n += c.TextLen()
	}
	return &Node{kind: kind, textLen: n, children: children}
}

func (*Node) isElement() {}

// Kind reports the kind of n.
func (n *Node) Kind() jcst.Kind { return n.kind }

// TextLen reports the total length in bytes of the text spanned by n, which
// is the sum of the lengths of its children.
func (n *Node) TextLen() int { return n.textLen }

// NumChildren reports the number of immediate children of n.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the child of n at index i, 0 ≤ i < n.NumChildren().
func (n *Node) Child(i int) Element { return n.children[i] }

// Children returns a sequence of the immediate children of n in order.
func (n *Node) Children() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, c := range n.children {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Tokens returns a sequence of all the tokens reachable from n, in order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) { n.walkTokens(yield) }
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for _, c := range n.children {
		switch t := c.(type) {
		case *Token:
			if !yield(t) {
				return false
			}
		case *Node:
			if !t.walkTokens(yield) {
				return false
			}
		}
	}
	return true
}

// Text returns the complete text spanned by n: the concatenation of the texts
// of all the tokens reachable from n, in order.
func (n *Node) Text() string {
	var sb strings.Builder
	sb.Grow(n.textLen)
	n.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the text spanned by n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var nw int64
	for t := range n.Tokens() {
		k, err := io.WriteString(w, t.text)
		nw += int64(k)
		if err != nil {
			return nw, err
		}
	}
	return nw, nil
}

func (n *Node) String() string {
	return fmt.Sprintf("%v(len=%d, children=%d)", n.kind, n.textLen, len(n.children))
}
