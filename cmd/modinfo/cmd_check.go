package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modinfo/java/codebase"
)

func newCheckCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <file-or-dir>...",
		Short: "Report problems in module declarations",
		Long: `Report syntax errors, malformed declarations and lint warnings.

Directories are searched for module-info.java files. The exit status is
1 when any error is found, or any warning with --strict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb := codebase.New(".", a.cfg.CacheSize)
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}
				if info.IsDir() {
					if err := cb.ScanDir(arg); err != nil {
						return err
					}
					continue
				}
				if err := cb.ScanFile(arg); err != nil {
					return err
				}
			}

			r := newProblemReporter(cmd.OutOrStdout())
			for _, p := range cb.Problems() {
				r.Report(p)
			}
			r.Summary(len(cb.Files()))

			if r.errors > 0 || (strict && r.warnings > 0) {
				return errSilent
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}
