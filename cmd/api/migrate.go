package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/geocoder89/meetuphub/internal/config"
	"github.com/geocoder89/meetuphub/internal/db"
	"github.com/geocoder89/meetuphub/internal/observability"
)

func migrateUp(dbURL string, log *slog.Logger) error {
	m, err := db.NewMigrator(dbURL, log)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return err
	}

	v, _, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("migrations applied", "version", v)
	return nil
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the embedded schema migrations",
	}

	withMigrator := func(fn func(m *db.Migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := db.NewMigrator(cfg.DBURL, observability.NewLogger(cfg.Env))
			if err != nil {
				return err
			}
			defer m.Close()

			return fn(m, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *db.Migrator, _ []string) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back n migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withMigrator(func(m *db.Migrator, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("down: invalid steps argument %q", args[0])
					}
					steps = n
				}
				return m.Down(steps)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *db.Migrator, _ []string) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version: %d  dirty: %v\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *db.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("force: invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		},
	)

	return cmd
}
