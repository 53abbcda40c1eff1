package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modinfo/java/module/query"
)

func newQueryCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "query <file> <query>",
		Short: "Test a module declaration against a query",
		Long: `Test a module declaration against a query and print true or false.
The exit status is 1 when the query does not hold.

Queries:
  requires [static] [transitive] <module>
  uses <type>
  provides <type> [with <type>, ...]
  exports <package> [to <module>, ...]
  opens <package> [to <module>, ...]
  annotated <type>`,
		Example: `  modinfo query module-info.java 'requires transitive java.sql'
  modinfo query module-info.java 'exports com.example.api to com.example.app'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := query.Parse(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			m, err := a.parseModel(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			ok := q.Eval(m)
			log.Debugf("%s: %s = %t", args[0], q, ok)
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), ok)
			}
			if !ok {
				return errSilent
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")

	return cmd
}
