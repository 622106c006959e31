// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcst_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value number <0>
Value number <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`"" "a b c" "a\tb" "a\u0020b"`, `
Value string <"">
Value string <"a b c">
Value string <"a\tb">
Value string <"a\u0020b">
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"a":15}`, `
BeginObject
BeginMember <"a">
Value number <15>
EndMember "}"
EndObject
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray
Value true <true>
EndArray
EndMember "}"
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},
	}

	for _, test := range tests {
		st := jcst.NewStream(test.input)
		th := new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse failed: %v", err)
		}

		if diff := testutil.DiffLines(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Various kinds of unbalanced object bits.
		{`{`, `BeginObject`,
			`at 1:1: expected "}" or string, got end of input`},
		{`}`, ``, `at 1:0: unexpected "}"`},
		{`{false:1}`, `BeginObject`,
			`at 1:1: expected "}" or string, got false`},
		{`{"true":}`, `
BeginObject
BeginMember <"true">`,
			`at 1:8: unexpected "}"`},
		{`{"true":1,`, `
BeginObject
BeginMember <"true">
Value number <1>
EndMember ","`,
			`at 1:10: expected string, got end of input`},

		// Unbalanced array bits.
		{`[`, `BeginArray`,
			`at 1:1: expected value, got end of input`},
		{`]`, ``, `at 1:0: unexpected "]"`},
		{`[15,`, `
BeginArray
Value number <15>`,
			`at 1:4: expected value, got end of input`},
		{`[15,]`, `
BeginArray
Value number <15>`,
			`at 1:4: unexpected "]"`},

		// Invalid values.
		{`1 2.0 forthright`, `
Value number <1>
Value number <2.0>`,
			`at 1:6: unexpected invalid token`},
		{`"what did you`, ``,
			`at 1:0: unexpected invalid token`},
	}

	for _, test := range tests {
		st := jcst.NewStream(test.input)
		th := new(testHandler)
		err := st.Parse(th)
		if err == nil {
			t.Error("Parse did not report an error")
			continue
		}

		if diff := testutil.DiffLines(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := testutil.DiffLines(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamTrailingCommas(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`[1,]`, "BeginArray\nValue number <1>\nEndArray\n."},
		{`[1, 2 , ]`, "BeginArray\nValue number <1>\nValue number <2>\nEndArray\n."},
		{`{"a":1,}`, `
BeginObject
BeginMember <"a">
Value number <1>
EndMember ","
EndObject
.`},
	}
	for _, test := range tests {
		st := jcst.NewStream(test.input)
		th := new(testHandler)
		if err := st.Parse(th); err == nil {
			t.Errorf("Parse %#q: got nil, want error", test.input)
		}

		st = jcst.NewStream(test.input)
		st.AllowTrailingCommas(true)
		th = new(testHandler)
		if err := st.Parse(th); err != nil {
			t.Errorf("Parse %#q with trailing commas: %v", test.input, err)
		}
		if diff := testutil.DiffLines(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}

	// A lone comma is never a valid array.
	st := jcst.NewStream(`[,]`)
	st.AllowTrailingCommas(true)
	if err := st.Parse(new(testHandler)); err == nil {
		t.Error("Parse [,]: got nil, want error")
	}
}

func TestStreamTrivia(t *testing.T) {
	const input = "[ 1,\n2 ] "
	th := new(triviaHandler)
	if err := jcst.NewStream(input).Parse(th); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	const want = `
BeginArray
Trivia " "@1..2
Value number <1>
Trivia "\n"@4..5
Value number <2>
Trivia " "@6..7
EndArray
Trivia " "@8..9
.`
	if diff := testutil.DiffLines(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestStreamHandlerError(t *testing.T) {
	fh := &failHandler{fail: "2"}
	err := jcst.NewStream(`[1, 2, 3]`).Parse(fh)
	if !errors.Is(err, errTestFail) {
		t.Errorf("Parse: got %v, want %v", err, errTestFail)
	}
	var serr *jcst.SyntaxError
	if errors.As(err, &serr) {
		t.Errorf("Parse: handler error reported as a syntax error: %v", serr)
	}
	if diff := testutil.DiffLines("BeginArray\nValue number <1>", fh.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestStreamErrorType(t *testing.T) {
	err := jcst.NewStream("[\n  1\n  2]").Parse(new(testHandler))
	var serr *jcst.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if diff := cmp.Diff(&jcst.SyntaxError{
		Span:     jcst.Span{Pos: 8, End: 9},
		Location: jcst.LineCol{Line: 3, Column: 2},
		Got:      jcst.Number,
		Want:     []jcst.Kind{jcst.RSquare, jcst.Comma},
		Message:  `expected "]" or ",", got number`,
	}, serr, cmpopts.IgnoreUnexported(jcst.SyntaxError{})); diff != "" {
		t.Errorf("Error (-want, +got):\n%s", diff)
	}
}

func TestParseOne(t *testing.T) {
	const input = `{ "love": true } [] "ok"`
	const want = `
BeginObject
BeginMember <"love">
Value true <true>
EndMember "}"
EndObject
---
BeginArray
EndArray
---
Value string <"ok">
---
.`
	th := new(testHandler)

	st := jcst.NewStream(input)
	for {
		err := st.ParseOne(th)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		th.pr("---")
	}

	if diff := testutil.DiffLines(want, th.output()); diff != "" {
		t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", input, diff)
	}
}

type testHandler struct {
	buf bytes.Buffer
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) BeginObject(loc jcst.Anchor) error { t.pr("BeginObject"); return nil }
func (t *testHandler) EndObject(loc jcst.Anchor) error   { t.pr("EndObject"); return nil }
func (t *testHandler) BeginArray(loc jcst.Anchor) error  { t.pr("BeginArray"); return nil }
func (t *testHandler) EndArray(loc jcst.Anchor) error    { t.pr("EndArray"); return nil }
func (t *testHandler) EndOfInput(loc jcst.Anchor)        { t.pr(".") }

func (t *testHandler) BeginMember(loc jcst.Anchor) error {
	t.pr("BeginMember <%s>", string(loc.Text()))
	return nil
}

func (t *testHandler) EndMember(loc jcst.Anchor) error {
	t.pr("EndMember %s", loc.Kind().Label())
	return nil
}

func (t *testHandler) Value(loc jcst.Anchor) error {
	t.pr(`Value %s <%s>`, loc.Kind().Label(), loc.Text())
	return nil
}

// triviaHandler is a testHandler that also records whitespace.
type triviaHandler struct{ testHandler }

func (t *triviaHandler) Trivia(loc jcst.Anchor) { t.pr("Trivia %q@%v", loc.Text(), loc.Span()) }

// failHandler fails when it sees a value whose text is fail.
type failHandler struct {
	testHandler
	fail string
}

var errTestFail = errors.New("handler failed")

func (f *failHandler) Value(loc jcst.Anchor) error {
	if loc.Text() == f.fail {
		return errTestFail
	}
	return f.testHandler.Value(loc)
}
