// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/jcst/ast"
	"github.com/creachadair/jcst/parser"
	"github.com/creachadair/jcst/syntax"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Print the concrete syntax tree of a JSON file",
		Long: `Parse a JSON file and print its concrete syntax tree.

The tree includes every byte of the input, including whitespace and any
text that is not valid JSON. Syntax errors are printed to stderr, and the
command fails if there were any.

Formats:
  tree   one element per line, indented by depth (default)
  json   a nested JSON object per element
  yaml   a nested YAML mapping per element`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) != 0 {
				name = args[0]
			}
			src, err := readInput(name)
			if err != nil {
				return err
			}
			res := parser.Parse(src)
			if err := writeTree(cmd.OutOrStdout(), format, res.Syntax()); err != nil {
				return err
			}
			for _, e := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}
			if !res.OK() {
				return fmt.Errorf("%d syntax errors", len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format (tree, json, yaml)")

	return cmd
}

func writeTree(w io.Writer, format string, root *syntax.Node) error {
	switch format {
	case "tree":
		_, err := fmt.Fprintln(w, syntax.Dump(root))
		return err
	case "json":
		v, err := hujson.Parse([]byte(newDumpNode(root).toValue().JSON()))
		if err != nil {
			return fmt.Errorf("format tree: %w", err)
		}
		v.Format()
		_, err = w.Write(v.Pack())
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDumpNode(root)); err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// A dumpNode is the structured form of one element of a syntax tree.
type dumpNode struct {
	Kind     string      `yaml:"kind"`
	Span     string      `yaml:"span"`
	Text     *string     `yaml:"text,omitempty"`
	Children []*dumpNode `yaml:"children,omitempty"`
}

func newDumpNode(e syntax.Element) *dumpNode {
	d := &dumpNode{Kind: e.Kind().String(), Span: e.Span().String()}
	switch t := e.(type) {
	case *syntax.Token:
		text := t.Text()
		d.Text = &text
	case *syntax.Node:
		for c := range t.ChildrenWithTokens() {
			d.Children = append(d.Children, newDumpNode(c))
		}
	}
	return d
}

func (d *dumpNode) toValue() ast.Value {
	obj := ast.Object{
		ast.Field("kind", ast.String(d.Kind)),
		ast.Field("span", ast.String(d.Span)),
	}
	if d.Text != nil {
		obj = append(obj, ast.Field("text", ast.String(*d.Text)))
	}
	if len(d.Children) != 0 {
		kids := make(ast.Array, len(d.Children))
		for i, c := range d.Children {
			kids[i] = c.toValue()
		}
		obj = append(obj, ast.Field("children", kids))
	}
	return obj
}
