// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcst

// Kind is the syntactic category of a token or a tree node. Tokens and nodes
// share a single tag space so that the children of a node are homogeneous.
type Kind uint16

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid kind, the zero value

	// Token kinds.
	LBrace     // left brace "{"
	RBrace     // right brace "}"
	LSquare    // left square bracket "["
	RSquare    // right square bracket "]"
	Colon      // colon ":"
	Comma      // comma ","
	True       // constant: true
	False      // constant: false
	Null       // constant: null
	String     // quoted string
	Number     // number
	Whitespace // run of whitespace
	Error      // text that does not match any token rule

	// Node kinds.
	Root   // the whole input
	Object // { ... }
	Array  // [ ... ]
	Bad    // a region that could not be parsed

	// EOF is reported by lookahead at the end of the input.
	// It never appears in a tree.
	EOF

	numKinds // sentinel, must be last
)

var kindStr = [...]string{
	Invalid:    "Invalid",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LSquare:    "LSquare",
	RSquare:    "RSquare",
	Colon:      "Colon",
	Comma:      "Comma",
	True:       "True",
	False:      "False",
	Null:       "Null",
	String:     "String",
	Number:     "Number",
	Whitespace: "Whitespace",
	Error:      "Error",
	Root:       "Root",
	Object:     "Object",
	Array:      "Array",
	Bad:        "Bad",
	EOF:        "EOF",
}

// String returns the name of k, as used in tree dumps.
func (k Kind) String() string {
	if k >= numKinds {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

var kindLabel = [...]string{
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Colon:      `":"`,
	Comma:      `","`,
	True:       "true",
	False:      "false",
	Null:       "null",
	String:     "string",
	Number:     "number",
	Whitespace: "whitespace",
	Error:      "invalid token",
	EOF:        "end of input",
}

// Label returns a human-readable description of k for use in diagnostics.
func (k Kind) Label() string {
	if int(k) < len(kindLabel) && kindLabel[k] != "" {
		return kindLabel[k]
	}
	return k.String()
}

// KindFromRaw converts a raw integer tag back to a Kind. It reports false if v
// does not correspond to a valid kind.
func KindFromRaw(v uint16) (Kind, bool) {
	if v == 0 || v >= uint16(numKinds) {
		return Invalid, false
	}
	return Kind(v), true
}

// IsToken reports whether k is a leaf token kind.
func (k Kind) IsToken() bool { return k >= LBrace && k <= Error }

// IsNode reports whether k is an interior node kind.
func (k Kind) IsNode() bool { return k >= Root && k <= Bad }

// IsTrivia reports whether k is syntactically insignificant.
func (k Kind) IsTrivia() bool { return k == Whitespace }

// IsScalar reports whether k is a token that forms a complete value on its
// own: a string, number, or constant.
func (k Kind) IsScalar() bool {
	switch k {
	case True, False, Null, String, Number:
		return true
	}
	return false
}

// StartsValue reports whether a token of kind k can begin a JSON value.
func (k Kind) StartsValue() bool { return k == LBrace || k == LSquare || k.IsScalar() }
