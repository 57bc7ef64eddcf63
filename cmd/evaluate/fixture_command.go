package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/catalog-engine/internal/repository"
)

func newFixtureCommand(ctx *commandContext) *cobra.Command {
	var name, outputPath, format string

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Evaluate a stored fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			logger, _ := ctx.runLogger(cmd.ErrOrStderr())
			return ctx.withRepository(cmd.Context(), logger, func(repo *repository.Repository) error {
				in, err := repo.Batches.Load(cmd.Context(), name)
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("fixture %q not found", name)
				}
				if err != nil {
					return err
				}
				results, err := evaluate(logger.With().Str("batch", name).Logger(), in)
				if err != nil {
					return err
				}
				return writeResults(cmd, outputPath, format, results)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Fixture name")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or table")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
