// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcst

import (
	"errors"
	"strings"

	"github.com/creachadair/jcst/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	return `"` + string(escape.Quote(mem.S(src))) + `"`
}

// Unquote decodes the text of a String token. Double quotation marks are
// removed, and escape sequences are replaced with their unescaped equivalents.
// A UTF-16 surrogate pair written as two \u escapes decodes to a single rune.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
