// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jcst"
)

// Parse parses and returns the JSON values from src. In case of error, any
// complete values already parsed are returned along with the error. The text
// of strings and numbers in the result shares storage with src.
func Parse(src string) ([]Value, error) {
	h := new(parseHandler)
	st := jcst.NewStream(src)
	var vs []Value
	for {
		if err := st.ParseOne(h); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		if len(h.stk) != 1 {
			return vs, errors.New("incomplete value")
		}
		vs = append(vs, h.stk[0])
		h.stk = h.stk[:0]
	}
}

// ParseSingle parses and returns a single JSON value from src. It is an error
// if src is empty or contains more than one value.
func ParseSingle(src string) (Value, error) {
	h := new(parseHandler)
	st := jcst.NewStream(src)
	if err := st.ParseOne(h); err == io.EOF {
		return nil, errors.New("no value in input")
	} else if err != nil {
		return nil, err
	}
	v := h.stk[0]
	if err := st.ParseOne(h); err == nil {
		return nil, errors.New("extra values after input")
	} else if err != io.EOF {
		return nil, err
	}
	return v, nil
}

// A parseHandler implements the jcst.Handler interface to construct abstract
// syntax trees for JSON values.
type parseHandler struct {
	stk []Value
}

func (h *parseHandler) reduce() error {
	if len(h.stk) > 1 {
		v := h.pop()
		return h.reduceValue(v)
	}
	return nil
}

func (h *parseHandler) reduceValue(v Value) error {
	if len(h.stk) == 0 {
		h.push(v) // a top-level value
		return nil
	}
	switch prev := h.top().(type) {
	case *Member:
		prev.Value = v
	case *Object:
		// already in the object
	case *Array:
		*prev = append(*prev, v)
	}
	return nil
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

func (h *parseHandler) BeginObject(loc jcst.Anchor) error {
	h.push(new(Object))
	return nil
}

func (h *parseHandler) EndObject(loc jcst.Anchor) error { return h.finish() }

func (h *parseHandler) BeginArray(loc jcst.Anchor) error {
	h.push(new(Array))
	return nil
}

func (h *parseHandler) EndArray(loc jcst.Anchor) error { return h.finish() }

// finish replaces the pointer to the just-completed aggregate atop the stack
// with its value, and reduces it into its container.
func (h *parseHandler) finish() error {
	var v Value
	switch t := h.pop().(type) {
	case *Object:
		v = *t
	case *Array:
		v = *t
	default:
		return fmt.Errorf("unbalanced value %T", t)
	}
	return h.reduceValue(v)
}

func (h *parseHandler) BeginMember(loc jcst.Anchor) error {
	// The object this member belongs to is atop the stack.  Add a pointer to
	// the new member into its collection eagerly, so that when reducing the
	// stack after the value is known, we don't have to reduce multiple times.

	mem := &Member{key: Quoted{text: loc.Text()}}
	obj := h.top().(*Object)
	*obj = append(*obj, mem)
	h.push(mem)
	return nil
}

func (h *parseHandler) EndMember(loc jcst.Anchor) error {
	h.pop()
	return nil
}

func (h *parseHandler) Value(loc jcst.Anchor) error {
	switch loc.Kind() {
	case jcst.String:
		return h.reduceValue(Quoted{text: loc.Text()})
	case jcst.Number:
		return h.reduceValue(Number{text: loc.Text()})
	case jcst.True, jcst.False:
		return h.reduceValue(Bool(loc.Kind() == jcst.True))
	case jcst.Null:
		return h.reduceValue(Null)
	default:
		return fmt.Errorf("unknown value %v", loc.Kind())
	}
}

func (h *parseHandler) EndOfInput(loc jcst.Anchor) {}
