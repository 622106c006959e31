// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		case r == utf8.RuneError:
			buf = append(buf, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			// Line and paragraph separators are not valid in JavaScript
			// string literals, so escape them.
			buf = append(buf, '\\', 'u', '2', '0', '2', hexDigit[r&15])
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}
