package ports

import (
	"context"

	"github.com/yearworm/backend/internal/core/domain"
)

// ResultRepository stores finished games for the stats surface.
type ResultRepository interface {
	RecordResult(ctx context.Context, result domain.GameResult) error
	// AverageScore returns the mean final score and the number of games
	// recorded for a mode.
	AverageScore(ctx context.Context, mode domain.Mode) (float64, int, error)
	ResultsForDate(ctx context.Context, date string) ([]domain.GameResult, error)
}
