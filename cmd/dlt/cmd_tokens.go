package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/virens/dlt/d/parser"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file.d>",
		Short: "Dump the token stream of a D source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			for _, tok := range parser.Tokenize(data, filename) {
				fmt.Printf("%s\t%s\t%q\n", tok.Span.Start, tok.Kind, tok.Literal)
			}
			return nil
		},
	}
}
