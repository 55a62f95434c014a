package main

import (
	"errors"

	"github.com/chll-hr/leave-backend/internal/config"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|reset|version]",
		Short:     "Apply the embedded database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "reset", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.App.Env, cfg.App.LogLevel)
			if !cfg.HasDatabase() {
				return errors.New("DB_HOST is required to run migrations")
			}
			return database.Migrate(cmd.Context(), cfg.DatabaseURL(), args[0])
		},
	}
}
