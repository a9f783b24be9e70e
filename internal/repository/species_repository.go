package repository

import (
	"context"
	"fmt"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const (
	selectSpeciesQuery = `SELECT seq, number, local_name, scientific_name, family, family_localized,
	order_name, order_localized, genus, genus_localized, is_subspecies
	FROM species ORDER BY seq`

	deleteSpeciesQuery = `DELETE FROM species`

	insertSpeciesQuery = `INSERT INTO species (seq, number, local_name, scientific_name, family, family_localized,
	order_name, order_localized, genus, genus_localized, is_subspecies)
	VALUES (:seq, :number, :local_name, :scientific_name, :family, :family_localized,
	:order_name, :order_localized, :genus, :genus_localized, :is_subspecies)`
)

// SpeciesRepository reads and replaces the species table. It doubles as a
// taxonomy.Source for deployments that keep the checklist in a database.
type SpeciesRepository struct {
	db *sqlx.DB
	tm *TransactionManager
}

// NewSpeciesRepository creates a new SpeciesRepository.
func NewSpeciesRepository(db *sqlx.DB) *SpeciesRepository {
	return &SpeciesRepository{db: db, tm: NewTransactionManager(db)}
}

// LoadSpecies returns every row in catalog order.
func (r *SpeciesRepository) LoadSpecies(ctx context.Context) ([]domain.Species, error) {
	var rows []models.Species
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, selectSpeciesQuery); err != nil {
		return nil, fmt.Errorf("failed to select species: %w", err)
	}
	out := make([]domain.Species, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// ReplaceAll swaps the table content for rows in a single transaction.
func (r *SpeciesRepository) ReplaceAll(ctx context.Context, rows []models.Species) error {
	return r.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.db)
		if _, err := exec.ExecContext(ctx, deleteSpeciesQuery); err != nil {
			return fmt.Errorf("failed to clear species table: %w", err)
		}
		for i := range rows {
			if _, err := exec.NamedExecContext(ctx, insertSpeciesQuery, rows[i]); err != nil {
				return fmt.Errorf("failed to insert species %q: %w", rows[i].LocalName, err)
			}
		}
		return nil
	})
}
