package database

import (
	"context"
	"path/filepath"
	"testing"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/repository"
	"birdcall-quiz/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSN(t *testing.T) {
	db, err := Open("sqlite3", "")
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestRunMigrations_RoundTrip(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "taxonomy.db")
	db, err := Open("sqlite3", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db))
	// second run is a no-op
	require.NoError(t, RunMigrations(db))

	repo := repository.NewSpeciesRepository(db)
	rows := []models.Species{
		models.FromDomain(1, "1", domain.Species{LocalName: "メジロ", ScientificName: "Zosterops japonicus", FamilyLocalized: "メジロ科"}),
		models.FromDomain(2, "1-1", domain.Species{LocalName: "シチトウメジロ", FamilyLocalized: "メジロ科", IsSubspecies: true}),
	}
	require.NoError(t, repo.ReplaceAll(context.Background(), rows))

	loaded, err := repo.LoadSpecies(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "メジロ", loaded[0].LocalName)
	assert.True(t, loaded[1].IsSubspecies)
}
