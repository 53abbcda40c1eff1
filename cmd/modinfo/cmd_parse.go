package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modinfo/format"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var resolve bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a module-info.java or module-info.class file and print its model",
		Long: `Parse a module-info.java or module-info.class file and print its model.

Use "-" to read source from stdin. With --resolve, type names are qualified
through the imports before printing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.parseModel(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if resolve {
				m = m.Resolved()
			}
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "java", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "qualify type names through the imports")

	return cmd
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Print the module declaration with every type name qualified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.parseModel(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return format.NewJavaEncoder(cmd.OutOrStdout()).Encode(m.Resolved())
		},
	}
}
