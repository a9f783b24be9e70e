package main

import (
	"context"
	"fmt"

	"birdcall-quiz/internal/config"
	"birdcall-quiz/internal/database"
	"birdcall-quiz/internal/logger"
	"birdcall-quiz/internal/repository"
	"birdcall-quiz/internal/repository/models"
	"birdcall-quiz/internal/taxonomy"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func importCommand(cfg *config.Config) *cobra.Command {
	var (
		jsonPath string
		dsn      string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the SQL species table with the pre-parsed JSON table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonPath == "" {
				jsonPath = cfg.Taxonomy.JSONPath
			}
			if dsn == "" {
				dsn = cfg.Taxonomy.SQLDSN
			}
			n, err := importTaxonomy(cmd.Context(), jsonPath, cfg.Taxonomy.SQLDriver, dsn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records from %s\n", n, jsonPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&jsonPath, "json", "", "pre-parsed taxonomy file (default taxonomy.json_path)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database DSN (default taxonomy.sql.dsn)")
	return cmd
}

// importTaxonomy migrates the schema and swaps in every JSON record in one
// transaction. It returns the number of rows written.
func importTaxonomy(ctx context.Context, jsonPath, driver, dsn string) (int, error) {
	records, err := taxonomy.JSONSource{Path: jsonPath}.ReadRecords()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%s contains no records", jsonPath)
	}

	db, err := database.Open(driver, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return 0, err
	}

	rows := make([]models.Species, len(records))
	for i, r := range records {
		rows[i] = models.FromDomain(int64(i+1), r.Number, r.ToDomain())
	}

	if err := repository.NewSpeciesRepository(db).ReplaceAll(ctx, rows); err != nil {
		return 0, err
	}
	logger.Get().Info("Taxonomy imported", zap.Int("records", len(rows)), zap.String("source", jsonPath))
	return len(rows), nil
}
