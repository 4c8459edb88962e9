package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/virens/dlt/d/codebase"
	"github.com/virens/dlt/d/outline"
	"github.com/virens/dlt/d/parser"
)

func newOutlineCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "outline <path>",
		Short: "Show the symbol outline of a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			if info.IsDir() {
				return outlineDirectory(path, outputFormat)
			}
			return outlineFile(path, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

func outlineFile(path string, outputFormat string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}

	discard := func(file string, line, column int, message string, isError bool) {}
	module, _ := parser.ParseModule(data, parser.WithFile(path), parser.WithDiagnostics(discard))
	symbols := outline.Build(data, module)

	return emitOutline(map[string][]*outline.Symbol{path: symbols}, outputFormat)
}

func outlineDirectory(path string, outputFormat string) error {
	config, err := codebase.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cb := codebase.New(path, config)
	if err := cb.ScanAll(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	outlines := make(map[string][]*outline.Symbol)
	for _, file := range cb.Paths() {
		outlines[file] = cb.Lookup(file).Outline
	}
	return emitOutline(outlines, outputFormat)
}

func emitOutline(outlines map[string][]*outline.Symbol, outputFormat string) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outlines); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "text":
		paths := make([]string, 0, len(outlines))
		for path := range outlines {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			fmt.Printf("%s\n", path)
			printSymbols(outlines[path], 1)
		}
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	return nil
}

func printSymbols(symbols []*outline.Symbol, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, s := range symbols {
		line := indent + s.Kind.String() + " " + s.Name
		if s.Detail != "" {
			line += "  " + s.Detail
		}
		fmt.Println(line)
		printSymbols(s.Children, depth+1)
	}
}
