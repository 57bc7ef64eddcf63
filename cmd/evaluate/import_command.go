package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Clark-Hu/catalog-engine/internal/repository"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var inputPath, name string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a batch document as a named fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("--name must not be empty")
			}
			in, err := readInput(cmd, inputPath)
			if err != nil {
				return err
			}
			if _, _, err := in.Build(); err != nil {
				return err
			}
			logger, _ := ctx.runLogger(cmd.ErrOrStderr())
			return ctx.withRepository(cmd.Context(), logger, func(repo *repository.Repository) error {
				if err := repo.Batches.Save(cmd.Context(), name, in); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%d actions)\n", name, len(in.Actions))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Batch document path, or - for stdin")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Fixture name")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
