// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jcst inspects JSON files as lossless concrete syntax trees.
//
// Usage:
//
//	jcst parse [FILE] [--format tree|json|yaml]
//	jcst check PATTERN... [--jobs N] [--first]
//	jcst bench FILE [--count N]
//	jcst lsp
//
// A FILE of "-" or an omitted FILE reads standard input. Patterns given to
// check may use "**" to match any number of directories.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("jcst")

func main() {
	var verbose int
	rootCmd := &cobra.Command{
		Use:          "jcst",
		Short:        "Inspect JSON files as lossless syntax trees",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput reads the named file, or standard input if name is "" or "-".
func readInput(name string) (string, error) {
	var data []byte
	var err error
	if name == "" || name == "-" {
		if stdinIsTerminal() {
			log.Notice("reading from the terminal; end input with EOF")
		}
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	log.Debugf("read %d bytes from %q", len(data), name)
	return string(data), nil
}

// version reports the module version of the binary, if known.
func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// stdinIsTerminal reports whether standard input is an interactive device.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
