package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modinfo/java/codebase"
)

func newLSPCmd(a *app) *cobra.Command {
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, a.cfg.CacheSize, watch)
			return server.RunStdio()
		},
	}

	cmd.Flags().DurationVar(&watch, "watch", 2*time.Second, "poll the workspace for changes at this interval (0 disables)")

	return cmd
}
