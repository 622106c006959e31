// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values, and parsers
// that construct syntax trees from JSON source text or from a concrete syntax
// tree.
//
// Unlike a concrete syntax tree, an AST records only the values of the input:
// whitespace and punctuation are discarded, and each value is represented by
// a Go type that supports direct inspection.
package ast

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/creachadair/jcst"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// An Object is a collection of key-value members.
type Object []*Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key() == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of the members of o, in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key()
	}
	return keys
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	key   Quoted
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member {
	return &Member{key: String(key), Value: value}
}

// Key returns the decoded key of m.
func (m *Member) Key() string { return m.key.Unquote() }

// JSON satisfies the Value interface. It returns the encoding of m as it
// appears in an object, "key":value.
func (m *Member) JSON() string { return m.key.JSON() + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Number is a numeric value. Its text is kept as written in the source, and
// converted on demand.
type Number struct {
	text string
}

// Int constructs a Number with an integer value.
func Int(z int64) Number { return Number{text: strconv.FormatInt(z, 10)} }

// Float constructs a Number with a floating-point value. It panics if f is
// infinite or NaN, which JSON cannot represent.
func Float(f float64) Number {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		panic(fmt.Sprintf("ast: invalid number %v", f))
	}
	return Number{text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// IsInt reports whether n is written as an integer that fits in an int64.
func (n Number) IsInt() bool {
	_, err := strconv.ParseInt(n.text, 10, 64)
	return err == nil
}

// Int64 returns the value of n as an int64, truncating a fractional value
// toward zero.
func (n Number) Int64() int64 {
	if z, err := strconv.ParseInt(n.text, 10, 64); err == nil {
		return z
	}
	return int64(n.Float64())
}

// Float64 returns the value of n as a float64. A value whose magnitude is too
// large is reported as an infinity.
func (n Number) Float64() float64 {
	v, _ := strconv.ParseFloat(n.text, 64) // the lexer only admits valid numbers
	return v
}

// JSON satisfies the Value interface.
func (n Number) JSON() string { return n.text }

// Quoted is a string value. Its text is kept quoted as written in the source,
// and decoded on demand.
type Quoted struct {
	text string
}

// String constructs a string value with the given contents.
func String(s string) Quoted { return Quoted{text: jcst.Quote(s)} }

// Unquote returns the decoded contents of q. If q contains an invalid escape,
// the undecoded text between the quotes is returned.
func (q Quoted) Unquote() string {
	s, err := jcst.Unquote(q.text)
	if err != nil {
		return strings.TrimSuffix(strings.TrimPrefix(q.text, `"`), `"`)
	}
	return s
}

// JSON satisfies the Value interface.
func (q Quoted) JSON() string { return q.text }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

type nullValue struct{}

// JSON satisfies the Value interface.
func (nullValue) JSON() string { return "null" }

// Null is the null constant.
var Null Value = nullValue{}

// ToValue converts a Go value into an AST value. It handles nil, Booleans,
// strings, integers, floating-point numbers, slices and arrays, and maps with
// string keys, recursively. A Value is returned unchanged. ToValue panics for
// a value of any other type. Map members are ordered by key.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case []any:
		out := make(Array, len(t))
		for i, e := range t {
			out[i] = ToValue(e)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Object, len(keys))
		for i, k := range keys {
			out[i] = Field(k, ToValue(t[k]))
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number{text: strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Pointer:
		if rv.IsNil() {
			return Null
		}
		return ToValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make(Array, rv.Len())
		for i := range rv.Len() {
			out[i] = ToValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
		out := make(Object, len(keys))
		for i, k := range keys {
			out[i] = Field(k.String(), ToValue(rv.MapIndex(k).Interface()))
		}
		return out
	}
	panic(fmt.Sprintf("ast: cannot convert %T to a value", v))
}
