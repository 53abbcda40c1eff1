package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modinfo/format"
	"github.com/dhamidi/modinfo/java/parser"
)

func newTreeCmd(a *app) *cobra.Command {
	var outputFormat string
	var includeComments bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Dump the syntax tree of a module-info.java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			opts := []parser.Option{parser.WithFile(name)}
			if includeComments {
				opts = append(opts, parser.WithComments())
			}
			p := parser.ParseCompilationUnit(bytes.NewReader(data), opts...)
			node := p.Finish()
			if node == nil {
				return fmt.Errorf("parse %s: %w", name, p.Err())
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				return format.NewASTJSONEncoder(out).Encode(name, node, p.Diagnostics())
			case "text":
				if includePositions {
					fmt.Fprintln(out, node.StringWithPositions())
				} else {
					fmt.Fprintln(out, node.String())
				}
				for _, d := range p.Diagnostics() {
					fmt.Fprintf(out, "%s: %s\n", d.Span.Start, d.Message)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or text)", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&includeComments, "comments", false, "keep comments in the tree")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "show source ranges in text output")

	return cmd
}
