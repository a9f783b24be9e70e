package database

import (
	"fmt"

	"birdcall-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"go.uber.org/zap"
)

// Open connects to the taxonomy database and verifies the connection.
func Open(driver, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	// sqlite allows a single writer
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	logger.Get().Info("Connected to taxonomy database", zap.String("driver", driver))
	return db, nil
}
