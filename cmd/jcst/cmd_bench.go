// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/creachadair/jcst/ast"
	"github.com/creachadair/jcst/parser"
	"github.com/creachadair/jcst/syntax"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

func newBenchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "bench FILE",
		Short: "Compare JSON parsers on an input file",
		Long: `Time the parse, traverse, and stringify phases of several JSON parsers
on the same input, and check which of them reproduce the input exactly.

The parsers compared are the lossless syntax tree (cst), the semantic value
tree (ast), the standard library (encoding/json), and hujson.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args[0])
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("invalid count %d", count)
			}
			var rows []benchResult
			for _, b := range benchmarks {
				log.Debugf("running %s benchmark", b.name)
				r, err := b.run(src, count)
				if err != nil {
					return fmt.Errorf("%s: %w", b.name, err)
				}
				rows = append(rows, r)
			}
			writeBench(cmd.OutOrStdout(), len(src), count, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of iterations of each phase")

	return cmd
}

// A benchmark measures one parser. Each phase function operates on the
// result of the previous phase: parse returns a tree, traverse visits every
// element of that tree and returns the number visited, and stringify renders
// the tree back to text.
type benchmark struct {
	name      string
	parse     func(src string) (any, error)
	traverse  func(tree any) int
	stringify func(tree any) (string, error)
}

type benchResult struct {
	name                       string
	parse, traverse, stringify time.Duration
	elements                   int
	lossless                   bool
}

func (b benchmark) run(src string, count int) (benchResult, error) {
	r := benchResult{name: b.name}
	var tree any
	start := time.Now()
	for range count {
		var err error
		tree, err = b.parse(src)
		if err != nil {
			return r, err
		}
	}
	r.parse = time.Since(start) / time.Duration(count)

	start = time.Now()
	for range count {
		r.elements = b.traverse(tree)
	}
	r.traverse = time.Since(start) / time.Duration(count)

	var text string
	start = time.Now()
	for range count {
		var err error
		text, err = b.stringify(tree)
		if err != nil {
			return r, err
		}
	}
	r.stringify = time.Since(start) / time.Duration(count)
	r.lossless = text == src
	return r, nil
}

var benchmarks = []benchmark{
	{
		name: "cst",
		parse: func(src string) (any, error) {
			res := parser.Parse(src)
			return res.Syntax(), res.Err()
		},
		traverse: func(tree any) int {
			var n int
			for range tree.(*syntax.Node).PreorderWithTokens() {
				n++
			}
			return n / 2 // one enter and one leave event per element
		},
		stringify: func(tree any) (string, error) { return tree.(*syntax.Node).Text(), nil },
	},
	{
		name:      "ast",
		parse:     func(src string) (any, error) { return ast.ParseSingle(src) },
		traverse:  func(tree any) int { return countAST(tree.(ast.Value)) },
		stringify: func(tree any) (string, error) { return tree.(ast.Value).JSON(), nil },
	},
	{
		name: "encoding/json",
		parse: func(src string) (any, error) {
			var v any
			err := json.Unmarshal([]byte(src), &v)
			return v, err
		},
		traverse: countAny,
		stringify: func(tree any) (string, error) {
			data, err := json.Marshal(tree)
			return string(data), err
		},
	},
	{
		name:      "hujson",
		parse:     func(src string) (any, error) { return hujson.Parse([]byte(src)) },
		traverse:  func(tree any) int { return countHuJSON(tree.(hujson.Value)) },
		stringify: func(tree any) (string, error) { return string(tree.(hujson.Value).Pack()), nil },
	},
}

func countAST(v ast.Value) int {
	n := 1
	switch t := v.(type) {
	case ast.Object:
		for _, m := range t {
			n += countAST(m.Value)
		}
	case ast.Array:
		for _, e := range t {
			n += countAST(e)
		}
	}
	return n
}

func countAny(v any) int {
	n := 1
	switch t := v.(type) {
	case map[string]any:
		for _, e := range t {
			n += countAny(e)
		}
	case []any:
		for _, e := range t {
			n += countAny(e)
		}
	}
	return n
}

func countHuJSON(v hujson.Value) int {
	n := 1
	switch t := v.Value.(type) {
	case *hujson.Object:
		for _, m := range t.Members {
			n += countHuJSON(m.Value)
		}
	case *hujson.Array:
		for _, e := range t.Elements {
			n += countHuJSON(e)
		}
	}
	return n
}

func writeBench(w io.Writer, size, count int, rows []benchResult) {
	fmt.Fprintf(w, "input: %d bytes, %d iterations per phase\n\n", size, count)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "parser\tparse\ttraverse\tstringify\telements\tlossless\t\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\t%d\t%v\t\n", r.name, r.parse, r.traverse, r.stringify, r.elements, r.lossless)
	}
	tw.Flush()
}
