// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/ast"
	"github.com/creachadair/jcst/parser"
	"github.com/creachadair/jcst/syntax"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// writeFiles creates the given files under dir, creating directories as
// needed.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(text), 0600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ok.json":          `{"a": [1, 2]}`,
		"sub/bad.json":     "{\n\t\"a\": 1\n\t\"b\": 2\n}",
		"sub/deep/ok.json": `[]`,
		"sub/notes.txt":    `not JSON`,
	})

	files, err := expandPatterns([]string{
		filepath.Join(dir, "**", "*.json"),
		filepath.Join(dir, "ok.json"), // duplicate
	})
	if err != nil {
		t.Fatalf("expandPatterns: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if diff := cmp.Diff([]string{"ok.json", "sub/bad.json", "sub/deep/ok.json"}, rel); diff != "" {
		t.Errorf("Files (-want, +got):\n%s", diff)
	}

	if _, err := expandPatterns([]string{filepath.Join(dir, "*.yaml")}); err == nil {
		t.Error("expandPatterns: got nil, want error for unmatched pattern")
	}
	if _, err := expandPatterns([]string{"[bad"}); err == nil {
		t.Error("expandPatterns: got nil, want error for invalid pattern")
	}

	reports, err := checkFiles(files, 2)
	if err != nil {
		t.Fatalf("checkFiles: %v", err)
	}
	for i, r := range reports {
		if r.name != files[i] {
			t.Errorf("Report %d: got %q, want %q", i, r.name, files[i])
		}
	}
	if n := len(reports[0].errs) + len(reports[2].errs); n != 0 {
		t.Errorf("Valid files reported %d errors", n)
	}

	bad := reports[1]
	bad.name = "bad.json"
	var sb strings.Builder
	bad.write(&sb)
	const want = "bad.json:3:2: expected \",\" or \"}\", got string\n" +
		"\t\t\"b\": 2\n" +
		"\t\t^\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Report (-want, +got):\n%s", diff)
	}

	if _, err := checkFiles([]string{filepath.Join(dir, "missing.json")}, 1); err == nil {
		t.Error("checkFiles: got nil, want error for missing file")
	}
}

func TestCaretPad(t *testing.T) {
	const src = "[\n  \"\U0001f600\", @\n\t\t1 2]"
	idx := jcst.NewLineIndex(src)
	tests := []struct {
		offset int
		want   string
	}{
		{0, ""},
		{2, ""},          // within the indentation
		{4, "  "},        // at the string
		{12, "        "}, // after the wide emoji
		{16, "\t\t"},
		{18, "\t\t  "},
	}
	for _, tc := range tests {
		line := idx.LineCol(tc.offset).Line
		if got := caretPad(idx, line, tc.offset); got != tc.want {
			t.Errorf("caretPad(%d): got %q, want %q", tc.offset, got, tc.want)
		}
	}
}

func TestWriteTree(t *testing.T) {
	const input = `[1, {"a": true}]`
	root := parser.Parse(input).Syntax()

	t.Run("Tree", func(t *testing.T) {
		var sb strings.Builder
		if err := writeTree(&sb, "tree", root); err != nil {
			t.Fatalf("writeTree: %v", err)
		}
		if diff := cmp.Diff(syntax.Dump(root)+"\n", sb.String()); diff != "" {
			t.Errorf("Tree output (-want, +got):\n%s", diff)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var sb strings.Builder
		if err := writeTree(&sb, "json", root); err != nil {
			t.Fatalf("writeTree: %v", err)
		}
		v, err := ast.ParseSingle(sb.String())
		if err != nil {
			t.Fatalf("Output is not valid JSON: %v\n%s", err, sb.String())
		}
		want := newDumpNode(root).toValue().JSON()
		if got := v.JSON(); got != want {
			t.Errorf("JSON output: got %s, want %s", got, want)
		}
		if !strings.Contains(sb.String(), "\n") {
			t.Errorf("JSON output is not indented: %s", sb.String())
		}
	})

	t.Run("YAML", func(t *testing.T) {
		var sb strings.Builder
		if err := writeTree(&sb, "yaml", root); err != nil {
			t.Fatalf("writeTree: %v", err)
		}
		var got dumpNode
		if err := yaml.Unmarshal([]byte(sb.String()), &got); err != nil {
			t.Fatalf("Output is not valid YAML: %v", err)
		}
		if diff := cmp.Diff(newDumpNode(root), &got); diff != "" {
			t.Errorf("YAML output (-want, +got):\n%s", diff)
		}
	})

	if err := writeTree(new(strings.Builder), "xml", root); err == nil {
		t.Error("writeTree: got nil, want error for unknown format")
	}
}

func TestBenchmarks(t *testing.T) {
	const input = `{"a": [1, 2.5, "x", null, true]}`
	got := make(map[string]benchResult)
	for _, b := range benchmarks {
		r, err := b.run(input, 2)
		if err != nil {
			t.Fatalf("Benchmark %s: %v", b.name, err)
		}
		got[b.name] = r
	}

	tests := []struct {
		name     string
		elements int
		lossless bool
	}{
		{"cst", 23, true},
		{"ast", 7, false},
		{"encoding/json", 7, false},
		{"hujson", 7, true},
	}
	for _, tc := range tests {
		r, ok := got[tc.name]
		if !ok {
			t.Errorf("Missing benchmark %q", tc.name)
			continue
		}
		if r.elements != tc.elements || r.lossless != tc.lossless {
			t.Errorf("Benchmark %s: got %d elements, lossless %v; want %d, %v",
				tc.name, r.elements, r.lossless, tc.elements, tc.lossless)
		}
	}

	var sb strings.Builder
	writeBench(&sb, len(input), 2, []benchResult{got["cst"]})
	if !strings.Contains(sb.String(), "lossless") || !strings.Contains(sb.String(), "cst") {
		t.Errorf("Bench output missing columns:\n%s", sb.String())
	}
}
