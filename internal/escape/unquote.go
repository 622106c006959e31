// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes are replaced by the Unicode replacement rune. A high surrogate
// escape followed by a low surrogate escape decodes to a single rune; an
// unpaired surrogate decodes to the replacement rune. Unquote reports an error
// for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the next rune after the escape to figure out what to
		// substitute. There should not be errors here, but if there are, insert
		// replacement runes (utf8.RuneError == '\ufffd').
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := unicodeEscape(src)
			if err != nil {
				return nil, err
			}
			src = rest
			dec = utf8.AppendRune(dec, v)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// unicodeEscape decodes the four hex digits following "\u" at the front of
// src, and a trailing low surrogate escape if the first is a high surrogate.
// It returns the decoded rune and the remaining input.
func unicodeEscape(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	v, ok := parseHex(src.SliceTo(4))
	src = src.SliceFrom(4)
	if !ok {
		return utf8.RuneError, src, nil
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, src, nil
	}

	// A high surrogate must be followed by an escaped low surrogate.
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if w, ok := parseHex(src.Slice(2, 6)); ok {
			if p := utf16.DecodeRune(r, rune(w)); p != utf8.RuneError {
				return p, src.SliceFrom(6), nil
			}
		}
	}
	return utf8.RuneError, src, nil
}

func parseHex(data mem.RO) (int64, bool) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, false
		}
	}
	return v, true
}
