package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	ctx := newCommandContext(&logLevel)

	rootCmd := &cobra.Command{
		Use:           "evaluate",
		Short:         "Evaluate catalog action batches",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (trace, debug, info, warn, error, disabled)")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newFixtureCommand(ctx))

	return rootCmd
}
