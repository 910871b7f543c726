// Package sqlite provides a SQLite-backed implementation of the result
// repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/core/ports"
)

// Adapter implements the result repository port for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.ResultRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// RecordResult stores one finished game.
func (a *Adapter) RecordResult(ctx context.Context, result domain.GameResult) error {
	query := `
		INSERT INTO results (id, played_on, mode, score)
		VALUES (?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(ctx, query, result.ID, result.Date, string(result.Mode), result.Score); err != nil {
		return fmt.Errorf("failed to record result %s: %w", result.ID, err)
	}
	return nil
}

// AverageScore returns the mean final score and the number of games
// recorded for a mode. No games yields (0, 0, nil).
func (a *Adapter) AverageScore(ctx context.Context, mode domain.Mode) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM results
		WHERE mode = ?
	`
	var avg float64
	var count int
	if err := a.db.QueryRowContext(ctx, query, string(mode)).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to load average score: %w", err)
	}
	return avg, count, nil
}

// ResultsForDate returns every result recorded against a play date, oldest
// first.
func (a *Adapter) ResultsForDate(ctx context.Context, date string) ([]domain.GameResult, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, played_on, mode, score
		FROM results
		WHERE played_on = ?
		ORDER BY created_at ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	var results []domain.GameResult
	for rows.Next() {
		var result domain.GameResult
		var mode string
		if err := rows.Scan(&result.ID, &result.Date, &mode, &result.Score); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		result.Mode = domain.Mode(mode)
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		played_on TEXT NOT NULL,
		mode TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_played_on ON results(played_on);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
