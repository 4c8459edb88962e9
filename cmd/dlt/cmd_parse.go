package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/virens/dlt/d/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file.d>",
		Short: "Parse a D source file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			node, p := parser.ParseModule(data, parser.WithFile(filename))

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				if includePositions {
					fmt.Print(node.StringWithPositions())
				} else {
					fmt.Print(node.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			printSummary(p.Errors(), p.Warnings())
			if p.Errors() > 0 {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return fmt.Errorf("%d syntax errors", p.Errors())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source positions in tree output")

	return cmd
}

// printSummary writes the diagnostic totals to stderr, colored when
// stderr is a terminal.
func printSummary(errors, warnings int) {
	if errors == 0 && warnings == 0 {
		return
	}

	summary := fmt.Sprintf("%d errors, %d warnings", errors, warnings)
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		color := "\033[31m"
		if errors == 0 {
			color = "\033[33m"
		}
		summary = color + summary + "\033[0m"
	}
	fmt.Fprintln(os.Stderr, summary)
}
