package main

import (
	"github.com/spf13/cobra"

	"github.com/geocoder89/meetuphub/internal/config"
)

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:          "meetuphub",
		Short:        "Meetup and registration REST API",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	root.AddCommand(
		newServeCmd(&cfg),
		newMigrateCmd(&cfg),
		newTokenCmd(&cfg),
	)

	return root
}
