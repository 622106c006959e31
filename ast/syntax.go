// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/syntax"
)

// FromSyntax interprets the concrete syntax tree rooted at e as a value.
// If e is a Root, its value is interpreted; an empty document is an error.
//
// FromSyntax reports an error if the tree does not have the structure of a
// valid JSON value, for example if it contains Bad nodes or Error tokens, or
// if an object or array is missing a separator or its closing bracket.
// The text of strings and numbers in the result shares storage with the tree.
func FromSyntax(e syntax.Element) (Value, error) {
	if n, ok := e.(*syntax.Node); ok && n.Kind() == jcst.Root {
		v := syntax.Value(n)
		if v == nil {
			return nil, fmt.Errorf("at %v: empty document", n.Span())
		}
		if err := checkTrailing(v); err != nil {
			return nil, err
		}
		e = v
	}
	return fromElement(e)
}

// checkTrailing reports an error if any non-trivia siblings follow v.
func checkTrailing(v syntax.Element) error {
	for c := v.NextSibling(); c != nil; c = c.NextSibling() {
		if !c.Kind().IsTrivia() {
			return errAt(c, "unexpected %s after value", c.Kind())
		}
	}
	return nil
}

func fromElement(e syntax.Element) (Value, error) {
	switch e.Kind() {
	case jcst.Object:
		return fromObject(e.(*syntax.Node))
	case jcst.Array:
		return fromArray(e.(*syntax.Node))
	case jcst.String:
		return Quoted{text: e.Text()}, nil
	case jcst.Number:
		return Number{text: e.Text()}, nil
	case jcst.True:
		return Bool(true), nil
	case jcst.False:
		return Bool(false), nil
	case jcst.Null:
		return Null, nil
	case jcst.Bad, jcst.Error:
		return nil, errAt(e, "invalid input %q", e.Text())
	default:
		return nil, errAt(e, "unexpected %v", e.Kind())
	}
}

// body returns the non-trivia children of n between its opening and closing
// brackets. It reports an error if the closing bracket is missing.
func body(n *syntax.Node, close jcst.Kind) ([]syntax.Element, error) {
	var out []syntax.Element
	for c := range n.ChildrenWithTokens() {
		if !c.Kind().IsTrivia() {
			out = append(out, c)
		}
	}
	if len(out) < 2 || out[len(out)-1].Kind() != close {
		return nil, errAt(n, "unterminated %v", n.Kind())
	}
	return out[1 : len(out)-1], nil
}

// fromObject interprets an Object node, whose body has the form
//
//	key : value , key : value ...
func fromObject(n *syntax.Node) (Value, error) {
	elts, err := body(n, jcst.RBrace)
	if err != nil {
		return nil, err
	}
	if k := len(elts); k != 0 && elts[k-1].Kind() == jcst.Comma {
		return nil, errAt(elts[k-1], "trailing comma in object")
	}
	obj := make(Object, 0, (len(elts)+1)/4)
	for i := 0; i < len(elts); i += 4 {
		key := elts[i]
		if key.Kind() != jcst.String {
			return nil, errAt(key, "expected string, got %v", key.Kind())
		}
		if i+2 >= len(elts) || elts[i+1].Kind() != jcst.Colon {
			return nil, errAt(key, "missing value for key %s", key.Text())
		}
		v, err := fromElement(elts[i+2])
		if err != nil {
			return nil, err
		}
		if i+3 < len(elts) && elts[i+3].Kind() != jcst.Comma {
			return nil, errAt(elts[i+3], "expected comma, got %v", elts[i+3].Kind())
		}
		obj = append(obj, &Member{key: Quoted{text: key.Text()}, Value: v})
	}
	return obj, nil
}

// fromArray interprets an Array node, whose body has the form
//
//	value , value , ...
func fromArray(n *syntax.Node) (Value, error) {
	elts, err := body(n, jcst.RSquare)
	if err != nil {
		return nil, err
	}
	if k := len(elts); k != 0 && elts[k-1].Kind() == jcst.Comma {
		return nil, errAt(elts[k-1], "trailing comma in array")
	}
	arr := make(Array, 0, (len(elts)+1)/2)
	for i, e := range elts {
		if i%2 == 1 {
			if e.Kind() != jcst.Comma {
				return nil, errAt(e, "expected comma, got %v", e.Kind())
			}
			continue
		}
		v, err := fromElement(e)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

func errAt(e syntax.Element, msg string, args ...any) error {
	return fmt.Errorf("at %v: %s", e.Span(), fmt.Sprintf(msg, args...))
}
