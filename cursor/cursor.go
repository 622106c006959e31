// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the concrete syntax tree of a JSON
// value.
package cursor

import (
	"fmt"
	"iter"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/syntax"
)

// Path traverses a sequential path into the structure of e where path
// elements are as documented for the Cursor.Down method.  This is a
// convenience wrapper for creating a cursor, applying path, and retrieving its
// value.
func Path[T syntax.Element](e syntax.Element, path ...any) (T, error) {
	c := New(e).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	v, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong element type %T", c.Value())
	}
	return v, nil
}

// A Cursor is a pointer that navigates into the structure of a syntax tree.
type Cursor struct {
	org syntax.Element
	stk []syntax.Element
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin syntax.Element) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin element of c.
func (c *Cursor) Origin() syntax.Element { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current element under the cursor.
func (c *Cursor) Value() syntax.Element {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of elements from the origin to the
// current location in c.
func (c *Cursor) Path() []syntax.Element {
	return append([]syntax.Element{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current element, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays or objects), or functions (see
// below). If the path cannot be completely consumed, traversal stops and an
// error is recorded. Use Err to recover the error. A Root node is traversed
// transparently to the value it contains.
//
// If a path element is a string, the corresponding element must be an Object
// node, and the string resolves to the value of the first member with that
// key.
//
// If a path element is an integer, the corresponding element must be an Array
// or Object node, and the integer resolves to the element at that index, or
// to the value of the member at that index. Negative indices count backward
// from the end (-1 is last, -2 second last). An error is reported if the index
// is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next element in the sequence. The function must have a
// signature
//
//	func(syntax.Element) (syntax.Element, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		if n, ok := cur.(*syntax.Node); ok && n.Kind() == jcst.Root {
			v := syntax.Value(n)
			if v == nil {
				return c.setErrorf("empty document")
			}
			cur = c.push(v)
		}

		switch t := elt.(type) {
		case string:
			obj, ok := asKind(cur, jcst.Object)
			if !ok {
				return c.setErrorf("cannot traverse %v with %q", cur.Kind(), t)
			}
			m, ok := syntax.Find(obj, t)
			if !ok {
				return c.setErrorf("key %q not found", t)
			} else if m.Value == nil {
				return c.setErrorf("key %q has no value", t)
			}
			cur = c.push(m.Value)

		case int:
			if arr, ok := asKind(cur, jcst.Array); ok {
				vs := collect(syntax.Values(arr), func(e syntax.Element) syntax.Element { return e })
				i, ok := fixArrayBound(len(vs), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", i, len(vs))
				}
				cur = c.push(vs[i])
			} else if obj, ok := asKind(cur, jcst.Object); ok {
				ms := collect(syntax.Members(obj), func(m syntax.Member) syntax.Element { return m.Value })
				i, ok := fixArrayBound(len(ms), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", i, len(ms))
				} else if ms[i] == nil {
					return c.setErrorf("member %d has no value", i)
				}
				cur = c.push(ms[i])
			} else {
				return c.setErrorf("cannot traverse %v with %v", cur.Kind(), elt)
			}

		case func(syntax.Element) (syntax.Element, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(e syntax.Element) syntax.Element { c.stk = append(c.stk, e); return e }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func asKind(e syntax.Element, kind jcst.Kind) (*syntax.Node, bool) {
	n, ok := e.(*syntax.Node)
	return n, ok && n.Kind() == kind
}

func collect[T any](seq iter.Seq[T], f func(T) syntax.Element) []syntax.Element {
	var out []syntax.Element
	for v := range seq {
		out = append(out, f(v))
	}
	return out
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
