package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phrazzld/studydesk/internal/platform/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Run schema migrations against the Postgres store",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.CommandUp, postgres.CommandDown, postgres.CommandStatus, postgres.CommandVersion},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(cfgFile)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate requires storage.driver=postgres, got %q", cfg.Storage.Driver)
			}
			logger, err := setupAppLogger(cfg)
			if err != nil {
				return err
			}

			db, err := postgres.OpenDB(cmd.Context(), cfg.Storage.URL)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			return postgres.Migrate(cmd.Context(), db, args[0], logger)
		},
	}
}
