// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package syntax implements a position-aware view of a green tree.
//
// A green tree (see package green) records structure and text but no
// positions. The types in this package wrap green elements with their absolute
// offset in the source and a link to their parent, computed lazily as the
// caller navigates: children are materialized only when requested, each
// inheriting the offset of its preceding siblings' cumulative length.
//
// Syntax values are cheap, transient, and never modify the underlying green
// tree, so independent traversals of a shared green tree need no
// synchronization. Two syntax values are equal by position, not by identity:
// see Node.Equal.
package syntax

import (
	"io"
	"iter"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/green"
)

// An Element is a node or token in a syntax tree. The concrete type is either
// *Node or *Token.
type Element interface {
	// Kind reports the syntactic kind of the element.
	Kind() jcst.Kind

	// Span reports the absolute location of the element in the source.
	Span() jcst.Span

	// Parent returns the node containing the element, or nil for a root.
	Parent() *Node

	// Index reports the position of the element among its parent's children.
	Index() int

	// Text returns the exact source text spanned by the element.
	Text() string

	// NextSibling returns the following sibling of the element, or nil.
	NextSibling() Element

	// PrevSibling returns the preceding sibling of the element, or nil.
	PrevSibling() Element

	// GreenElement returns the underlying green element.
	GreenElement() green.Element

	isElement()
}

// A Node is an interior node of a syntax tree.
type Node struct {
	green  *green.Node
	parent *Node
	index  int
	offset int
}

// NewRoot returns the root of a syntax tree for g, positioned at offset 0.
func NewRoot(g *green.Node) *Node { return &Node{green: g} }

func (*Node) isElement() {}

// Kind reports the kind of n.
func (n *Node) Kind() jcst.Kind { return n.green.Kind() }

// Green returns the green node underlying n.
func (n *Node) Green() *green.Node { return n.green }

// GreenElement returns the green node underlying n.
func (n *Node) GreenElement() green.Element { return n.green }

// Parent returns the parent of n, or nil if n is a root.
func (n *Node) Parent() *Node { return n.parent }

// Index reports the position of n among the children of its parent.
// For a root, Index returns 0.
func (n *Node) Index() int { return n.index }

// Offset reports the absolute offset of the start of n.
func (n *Node) Offset() int { return n.offset }

// Span reports the absolute location of n.
func (n *Node) Span() jcst.Span {
	return jcst.Span{Pos: n.offset, End: n.offset + n.green.TextLen()}
}

// Text returns the exact source text spanned by n.
func (n *Node) Text() string { return n.green.Text() }

// String returns the exact source text spanned by n.
func (n *Node) String() string { return n.Text() }

// WriteTo writes the source text spanned by n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) { return n.green.WriteTo(w) }

// Equal reports whether n and m denote the same position in the same tree.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	return n.green == m.green && n.offset == m.offset && n.root().green == m.root().green
}

func (n *Node) root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// NumChildren reports the number of immediate children of n, including tokens.
func (n *Node) NumChildren() int { return n.green.NumChildren() }

// ChildAt returns the child of n at index i, 0 ≤ i < n.NumChildren().
func (n *Node) ChildAt(i int) Element {
	off := n.offset
	for j := range i {
		off += n.green.Child(j).TextLen()
	}
	return n.wrap(i, off)
}

// wrap constructs the syntax element for the green child of n at index i,
// whose absolute offset is off.
func (n *Node) wrap(i, off int) Element {
	switch c := n.green.Child(i).(type) {
	case *green.Node:
		return &Node{green: c, parent: n, index: i, offset: off}
	case *green.Token:
		return &Token{green: c, parent: n, index: i, offset: off}
	default:
		panic("syntax: unknown green element")
	}
}

// ChildrenWithTokens returns a sequence of the immediate children of n in
// source order, both nodes and tokens. The sequence may be traversed any
// number of times.
func (n *Node) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		off := n.offset
		for i, c := range n.green.Children() {
			if !yield(n.wrap(i, off)) {
				return
			}
			off += c.TextLen()
		}
	}
}

// Children returns a sequence of the immediate child nodes of n in source
// order. Tokens are omitted; see ChildrenWithTokens.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := range n.ChildrenWithTokens() {
			if cn, ok := c.(*Node); ok && !yield(cn) {
				return
			}
		}
	}
}

// FirstChild returns the first child node of n, or nil.
func (n *Node) FirstChild() *Node {
	for c := range n.Children() {
		return c
	}
	return nil
}

// LastChild returns the last child node of n, or nil.
func (n *Node) LastChild() *Node {
	off := n.offset + n.green.TextLen()
	for i := n.green.NumChildren() - 1; i >= 0; i-- {
		c := n.green.Child(i)
		off -= c.TextLen()
		if _, ok := c.(*green.Node); ok {
			return n.wrap(i, off).(*Node)
		}
	}
	return nil
}

// FirstToken returns the first token reachable from n, or nil if n spans no
// tokens.
func (n *Node) FirstToken() *Token {
	for t := range n.Tokens() {
		return t
	}
	return nil
}

// LastToken returns the last token reachable from n, or nil if n spans no
// tokens.
func (n *Node) LastToken() *Token {
	cur := n
	for {
		k := cur.green.NumChildren()
		if k == 0 {
			return nil
		}
		c := cur.ChildAt(k - 1)
		if t, ok := c.(*Token); ok {
			return t
		}
		cur = c.(*Node)
	}
}

// NextSibling returns the child of n's parent following n, or nil.
func (n *Node) NextSibling() Element {
	if p := n.parent; p != nil && n.index+1 < p.green.NumChildren() {
		return p.wrap(n.index+1, n.offset+n.green.TextLen())
	}
	return nil
}

// PrevSibling returns the child of n's parent preceding n, or nil.
func (n *Node) PrevSibling() Element {
	if p := n.parent; p != nil && n.index > 0 {
		return p.wrap(n.index-1, n.offset-p.green.Child(n.index-1).TextLen())
	}
	return nil
}

// Ancestors returns a sequence of n and each of its ancestors in turn,
// ending with the root.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// Tokens returns a sequence of all the tokens reachable from n in source
// order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for ev := range n.PreorderWithTokens() {
			if t, ok := ev.Element.(*Token); ok && ev.Event == Enter && !yield(t) {
				return
			}
		}
	}
}

// Descendants returns a sequence of n and all the nodes beneath it, in
// depth-first, left-to-right order.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for ev := range n.Preorder() {
			if ev.Event == Enter && !yield(ev.Element.(*Node)) {
				return
			}
		}
	}
}

// TokenAtOffset returns the token whose span contains offset. If offset falls
// on the boundary between two tokens, the token starting at offset is
// returned. If offset is at the end of n, the last token is returned. It
// returns nil if offset lies outside n or n spans no tokens.
func (n *Node) TokenAtOffset(offset int) *Token {
	if !n.Span().Contains(offset) {
		return nil
	}
	cur := n
	for {
		var next Element
		for c := range cur.ChildrenWithTokens() {
			sp := c.Span()
			if sp.Pos <= offset && offset < sp.End {
				next = c
				break
			}
			if sp.Len() != 0 {
				next = c // at end of input, the last non-empty child
			}
		}
		switch t := next.(type) {
		case nil:
			return nil
		case *Token:
			return t
		case *Node:
			cur = t
		}
	}
}

// CoveringElement returns the smallest element of the subtree rooted at n
// whose span covers span. It returns nil if n does not cover span.
func (n *Node) CoveringElement(span jcst.Span) Element {
	if !n.Span().Covers(span) {
		return nil
	}
	var cur Element = n
	for {
		cn, ok := cur.(*Node)
		if !ok {
			return cur
		}
		var next Element
		for c := range cn.ChildrenWithTokens() {
			if cs := c.Span(); cs.Covers(span) && (cs.Len() > 0 || span.Len() == 0) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

// A Token is a leaf of a syntax tree.
type Token struct {
	green  *green.Token
	parent *Node
	index  int
	offset int
}

func (*Token) isElement() {}

// Kind reports the kind of t.
func (t *Token) Kind() jcst.Kind { return t.green.Kind() }

// Green returns the green token underlying t.
func (t *Token) Green() *green.Token { return t.green }

// GreenElement returns the green token underlying t.
func (t *Token) GreenElement() green.Element { return t.green }

// Parent returns the node containing t.
func (t *Token) Parent() *Node { return t.parent }

// Index reports the position of t among the children of its parent.
func (t *Token) Index() int { return t.index }

// Span reports the absolute location of t.
func (t *Token) Span() jcst.Span {
	return jcst.Span{Pos: t.offset, End: t.offset + t.green.TextLen()}
}

// Text returns the text of t.
func (t *Token) Text() string { return t.green.Text() }

// String returns the text of t.
func (t *Token) String() string { return t.green.Text() }

// NextSibling returns the child of t's parent following t, or nil.
func (t *Token) NextSibling() Element {
	if p := t.parent; p != nil && t.index+1 < p.green.NumChildren() {
		return p.wrap(t.index+1, t.offset+t.green.TextLen())
	}
	return nil
}

// PrevSibling returns the child of t's parent preceding t, or nil.
func (t *Token) PrevSibling() Element {
	if p := t.parent; p != nil && t.index > 0 {
		return p.wrap(t.index-1, t.offset-p.green.Child(t.index-1).TextLen())
	}
	return nil
}
