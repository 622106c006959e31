// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package syntax

import (
	"iter"
	"strings"

	"github.com/creachadair/jcst"
)

// Value returns the first non-trivia child of a Root node, which is the
// value of the document; or nil if the document is empty. If n is not a Root,
// Value returns n.
func Value(n *Node) Element {
	if n.Kind() != jcst.Root {
		return n
	}
	for c := range n.ChildrenWithTokens() {
		if !c.Kind().IsTrivia() {
			return c
		}
	}
	return nil
}

// A Member is a view of one key-value member of an Object node. In a tree
// built from invalid input, Colon or Value may be nil.
type Member struct {
	Key   *Token  // the String key
	Colon *Token  // the ":" separator
	Value Element // the value: a scalar token, an Object or Array, or Bad
}

// Name returns the decoded key of m. If the key has invalid escapes, the
// undecoded text of the key is returned.
func (m Member) Name() string {
	s, err := jcst.Unquote(m.Key.Text())
	if err != nil {
		return m.Key.Text()
	}
	return s
}

// Members returns a sequence of the members of an Object node, in order.
// Members without a key are skipped. If n is not an Object, the sequence is
// empty.
func Members(n *Node) iter.Seq[Member] {
	return func(yield func(Member) bool) {
		if n.Kind() != jcst.Object {
			return
		}
		var cur Member
		flush := func() bool {
			m := cur
			cur = Member{}
			return m.Key == nil || yield(m)
		}
		for c := range n.ChildrenWithTokens() {
			switch k := c.Kind(); {
			case k.IsTrivia(), k == jcst.LBrace:
				// skip
			case k == jcst.Comma, k == jcst.RBrace:
				if !flush() {
					return
				}
			case k == jcst.String && cur.Value != nil:
				// A new key after a complete member, with the comma missing.
				if !flush() {
					return
				}
				cur.Key = c.(*Token)
			case k == jcst.String && cur.Key == nil:
				cur.Key = c.(*Token)
			case k == jcst.Colon && cur.Colon == nil && cur.Value == nil:
				cur.Colon = c.(*Token)
			case cur.Value == nil && cur.Key != nil:
				cur.Value = c
			}
		}
		flush() // unterminated object
	}
}

// Find returns the first member of the Object node n whose decoded key equals
// key. It reports false if no such member exists.
func Find(n *Node, key string) (Member, bool) {
	for m := range Members(n) {
		if m.Name() == key {
			return m, true
		}
	}
	return Member{}, false
}

// Values returns a sequence of the elements of an Array node, in order. If n
// is not an Array, the sequence is empty.
func Values(n *Node) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		if n.Kind() != jcst.Array {
			return
		}
		for c := range n.ChildrenWithTokens() {
			switch k := c.Kind(); {
			case k.IsTrivia(), k == jcst.LSquare, k == jcst.RSquare, k == jcst.Comma:
				// skip
			default:
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Compact returns the text of e with all whitespace tokens removed.
func Compact(e Element) string {
	switch t := e.(type) {
	case *Token:
		if t.Kind().IsTrivia() {
			return ""
		}
		return t.Text()
	case *Node:
		var sb strings.Builder
		for tok := range t.Green().Tokens() {
			if !tok.Kind().IsTrivia() {
				sb.WriteString(tok.Text())
			}
		}
		return sb.String()
	}
	return ""
}
