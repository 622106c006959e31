// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Valid is a corpus of well-formed JSON documents, exercising every token
// kind and a variety of whitespace layouts.
var Valid = []string{
	``,
	`   `,
	"\n\t \r\n",
	`0`, `-0`, `123`, `  123  `, `-1.5e+10`, `0.25E-3`, `1e5`,
	`true`, `false`, `null`,
	`""`, `"a b c"`, `"\"\\\/\b\f\n\r\t"`, `"\u0000\u01fc\uAA9c"`,
	`"\ud83d\ude00 emoji"`, `"ünïcödé ☃"`,
	`{}`, `[]`, `{ }`, `[ ]`, "{\n}",
	`{"a":[1,2,true]}`,
	`{"a": 1, "b": [null, false, {"c": "d"}], "e": {}}`,
	`[[[[]]], [{}], [[], {}]]`,
	"{\n  \"name\": \"jcst\",\n  \"tags\": [\"json\", \"cst\"],\n  \"stars\": 5\n}\n",
	"[\r\n  1,\r\n  2\r\n]",
	"\f{\"x\"\t:\f-0.0}\n",
	`{"dup": 1, "dup": 2}`,
	`[1, "1", [1], {"1": 1}]`,
}

// Invalid is a corpus of ill-formed inputs. Each is lexically total but
// violates the grammar somewhere.
var Invalid = []string{
	`{`, `}`, `[`, `]`, `:`, `,`,
	`{"a":}`, `{"a"}`, `{"a" 1}`, `{"a":1,}`, `{,}`, `{1:2}`, `{:1}`,
	`[1,]`, `[1 2]`, `[,1]`, `[1:2]`, `[1}`, `{"a":1]`,
	`1 2`, `{} []`, `nul`, `tru e`, `"abc`, `"\x"`, `01`, `-`, `1.`, `.5`,
	`@`, `{"a": @}`, `[1, ☃]`, "\x00", "\xff\xfe",
	`{"a": [1, {"b": }], "c": 3`,
	`{"a": 1 "b": 2}`,
}

// DiffLines reports the differences between want and got as a cmp.Diff of
// their lines, ignoring leading and trailing whitespace.
func DiffLines(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// Input returns the contents of the shared test input file testdata/input.json
// from the module root, which is at the relative path root from the package
// under test.
func Input(tb testing.TB, root string) string {
	tb.Helper()
	data, err := os.ReadFile(filepath.Join(root, "testdata", "input.json"))
	if err != nil {
		tb.Fatalf("Reading test input: %v", err)
	}
	return string(data)
}
