// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/green"
	"github.com/creachadair/jcst/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCmd() *cobra.Command {
	var jobs int
	var first bool

	cmd := &cobra.Command{
		Use:   "check PATTERN...",
		Short: "Report syntax errors in JSON files",
		Long: `Parse each JSON file matching the given patterns and report syntax errors.

Patterns are glob patterns in which "**" matches any number of directories,
for example "configs/**/*.json". Each error is printed as

  file:line:col: message

followed by the offending line and a caret marking the error. Lines and
columns are 1-based. The command fails if any file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandPatterns(args)
			if err != nil {
				return err
			}
			log.Infof("checking %d files with %d workers", len(files), jobs)

			var opts []parser.Option
			opts = append(opts, parser.WithCache(green.NewCache()))
			if first {
				opts = append(opts, parser.StopAtFirstError())
			}
			reports, err := checkFiles(files, jobs, opts...)
			if err != nil {
				return err
			}

			var nerr, nbad int
			for _, r := range reports {
				if len(r.errs) == 0 {
					continue
				}
				nbad++
				nerr += len(r.errs)
				r.write(cmd.OutOrStdout())
			}
			if nerr != 0 {
				return fmt.Errorf("%d errors in %d of %d files", nerr, nbad, len(files))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files to parse concurrently")
	cmd.Flags().BoolVar(&first, "first", false, "report only the first error in each file")

	return cmd
}

// expandPatterns returns the names of the files matching each of the given
// glob patterns, in order, without duplicates. It is an error for a pattern
// to match nothing.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid pattern %q", pat)
		}
		matches, err := doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pat, err)
		} else if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pat)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// A fileReport records the syntax errors found in one file.
type fileReport struct {
	name string
	idx  *jcst.LineIndex
	errs []*jcst.SyntaxError
}

// checkFiles parses each of the named files using up to jobs goroutines, and
// returns a report for each file in the same order.
func checkFiles(files []string, jobs int, opts ...parser.Option) ([]fileReport, error) {
	reports := make([]fileReport, len(files))
	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, name := range files {
		g.Go(func() error {
			data, err := os.ReadFile(name)
			if err != nil {
				return err
			}
			src := string(data)
			res := parser.Parse(src, opts...)
			reports[i] = fileReport{name: name, idx: jcst.NewLineIndex(src), errs: res.Errors}
			log.Debugf("%s: %d bytes, %d errors", name, len(src), len(res.Errors))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// write prints the errors of r to w, each followed by the offending line of
// the source and a caret marking the error position.
func (r fileReport) write(w io.Writer) {
	for _, e := range r.errs {
		loc := e.Location
		fmt.Fprintf(w, "%s:%d:%d: %s\n", r.name, loc.Line, loc.Column+1, e.Message)
		fmt.Fprintf(w, "\t%s\n\t%s^\n", r.idx.Line(loc.Line), caretPad(r.idx, loc.Line, e.Span.Pos))
	}
}

// caretPad returns the padding that aligns a caret under offset, which is on
// the given line. Leading indentation is copied so that tabs line up.
func caretPad(idx *jcst.LineIndex, line, offset int) string {
	text := idx.Line(line)
	indent := text[:len(text)-len(strings.TrimLeft(text, " \t"))]
	start := idx.LineStart(line) + len(indent)
	if offset <= start {
		return indent[:max(offset-idx.LineStart(line), 0)]
	}
	return indent + strings.Repeat(" ", idx.DisplayColumn(offset)-idx.DisplayColumn(start))
}
