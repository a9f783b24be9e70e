package main

import (
	"birdcall-quiz/internal/config"
	"birdcall-quiz/internal/database"
	"birdcall-quiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCommand(cfg *config.Config) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = cfg.Taxonomy.SQLDSN
			}
			db, err := database.Open(cfg.Taxonomy.SQLDriver, dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			logger.Get().Info("Schema is up to date", zap.String("dsn", dsn))
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "database DSN (default taxonomy.sql.dsn)")
	return cmd
}
