package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Clark-Hu/catalog-engine/internal/batchio"
	"github.com/Clark-Hu/catalog-engine/internal/engine"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var inputPath, outputPath, format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a batch document and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			in, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			logger, _ := ctx.runLogger(cmd.ErrOrStderr())
			results, err := evaluate(logger, in)
			if err != nil {
				return err
			}
			return writeResults(cmd, outputPath, format, results)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Batch document path, or - for stdin")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or table")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatTable:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or table)", format)
	}
}

func readInput(cmd *cobra.Command, path string) (batchio.Input, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return batchio.Input{}, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	in, err := batchio.Decode(r)
	if err != nil {
		return batchio.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	return in, nil
}

func evaluate(logger zerolog.Logger, in batchio.Input) ([]engine.Result, error) {
	cat, actions, err := in.Build()
	if err != nil {
		return nil, err
	}
	return engine.New(cat, logger).Run(actions), nil
}

func writeResults(cmd *cobra.Command, path, format string, results []engine.Result) error {
	out := cmd.OutOrStdout()
	if strings.TrimSpace(path) != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if format == formatTable {
		_, err := fmt.Fprintln(out, renderResults(results))
		return err
	}
	return batchio.EncodeResults(out, results)
}
