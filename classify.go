// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcst

import "go4.org/mem"

// Classify reports the kind and length in bytes of the longest token at the
// front of src.
//
// Punctuation and the constants true, false, and null match only their
// literal spelling. A string is a double-quoted run whose body consists of
// characters other than quote and backslash, the escapes \" \\ \/ \b \f \n \r
// \t, and \u followed by exactly four hexadecimal digits. A number follows the
// JSON numeric grammar. Whitespace is a maximal run of space, tab, newline,
// carriage return, and form feed.
//
// If no rule matches, Classify returns Error and the length of one complete
// UTF-8 sequence (or one byte, if the input is not valid UTF-8 at that point),
// so that a caller can always make progress. If src is empty, Classify
// returns EOF and 0.
func Classify(src mem.RO) (Kind, int) {
	if src.Len() == 0 {
		return EOF, 0
	}
	switch ch := src.At(0); ch {
	case '{':
		return LBrace, 1
	case '}':
		return RBrace, 1
	case '[':
		return LSquare, 1
	case ']':
		return RSquare, 1
	case ':':
		return Colon, 1
	case ',':
		return Comma, 1
	case ' ', '\t', '\n', '\r', '\f':
		n := 1
		for n < src.Len() && isSpace(src.At(n)) {
			n++
		}
		return Whitespace, n
	case '"':
		if n := scanString(src); n > 0 {
			return String, n
		}
	case 't':
		if mem.HasPrefix(src, mem.S("true")) {
			return True, 4
		}
	case 'f':
		if mem.HasPrefix(src, mem.S("false")) {
			return False, 5
		}
	case 'n':
		if mem.HasPrefix(src, mem.S("null")) {
			return Null, 4
		}
	default:
		if isNumStart(ch) {
			if n := scanNumber(src); n > 0 {
				return Number, n
			}
		}
	}
	_, n := mem.DecodeRune(src)
	return Error, max(n, 1)
}

// scanString returns the length of the string token at the front of src, or
// 0 if src does not begin with a complete string. Precondition: src[0] == '"'.
func scanString(src mem.RO) int {
	i := 1
	for i < src.Len() {
		switch src.At(i) {
		case '"':
			return i + 1
		case '\\':
			if i+1 >= src.Len() {
				return 0
			}
			switch src.At(i + 1) {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > src.Len() {
					return 0
				}
				for j := i + 2; j < i+6; j++ {
					if !isHexDigit(src.At(j)) {
						return 0
					}
				}
				i += 6
			default:
				return 0
			}
		default:
			i++
		}
	}
	return 0 // unterminated
}

// scanNumber returns the length of the longest number at the front of src, or
// 0 if src does not begin with a number.
func scanNumber(src mem.RO) int {
	i := 0
	if src.At(0) == '-' {
		i++
	}
	if i >= src.Len() {
		return 0
	}

	// Integer part: a single 0, or a non-zero digit followed by digits.
	switch ch := src.At(i); {
	case ch == '0':
		i++
	case isDigit(ch):
		i = skipDigits(src, i+1)
	default:
		return 0
	}

	// Fraction: only if at least one digit follows the point.
	if i+1 < src.Len() && src.At(i) == '.' && isDigit(src.At(i+1)) {
		i = skipDigits(src, i+2)
	}

	// Exponent: only if at least one digit follows the marker and sign.
	if i < src.Len() && (src.At(i) == 'e' || src.At(i) == 'E') {
		j := i + 1
		if j < src.Len() && (src.At(j) == '+' || src.At(j) == '-') {
			j++
		}
		if j < src.Len() && isDigit(src.At(j)) {
			i = skipDigits(src, j+1)
		}
	}
	return i
}

func skipDigits(src mem.RO, i int) int {
	for i < src.Len() && isDigit(src.At(i)) {
		i++
	}
	return i
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
