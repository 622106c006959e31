// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"github.com/creachadair/jcst/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the JSON language server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Infof("starting language server %s", version())
			return lsp.NewServer(version()).RunStdio()
		},
	}
}
