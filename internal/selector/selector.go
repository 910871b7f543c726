// Package selector serves songs to game rounds: a deterministic five-song
// daily set with a curated override, and uniform random free-play picks.
package selector

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/core/ports"
)

// DailyCount is the fixed size of a daily song set.
const DailyCount = 5

// seedRange bounds the date-derived seed.
const seedRange = 1_000_000

// Selector picks songs out of the catalog.
type Selector struct {
	catalog ports.CatalogRepository
}

// compile-time interface assertion
var _ ports.SongSelector = (*Selector)(nil)

// New constructs a Selector over a catalog repository.
func New(catalog ports.CatalogRepository) *Selector {
	return &Selector{catalog: catalog}
}

// Daily returns the five songs for a date. A curated schedule entry wins
// verbatim; otherwise the set is sampled deterministically from the
// catalog so every player sees the same songs on the same day.
func (s *Selector) Daily(date string) ([]domain.Song, error) {
	schedule, err := s.catalog.Schedule()
	if err != nil {
		return nil, fmt.Errorf("selector: load schedule: %w", err)
	}
	if songs, ok := schedule[date]; ok {
		return songs, nil
	}

	all, err := s.catalog.Songs()
	if err != nil {
		return nil, fmt.Errorf("selector: load songs: %w", err)
	}
	if len(all) == 0 {
		return nil, domain.ErrInsufficientCatalog
	}

	// Replicate a small catalog so sampling without replacement below
	// always has five entries to draw from.
	pool := all
	if len(pool) < DailyCount {
		pool = make([]domain.Song, 0, DailyCount+len(all))
		for len(pool) < DailyCount {
			pool = append(pool, all...)
		}
	}

	// A locally scoped generator keeps daily determinism from bleeding
	// into the process-wide source used by free play.
	rng := rand.New(rand.NewSource(int64(dateSeed(date))))
	picks := rng.Perm(len(pool))[:DailyCount]

	out := make([]domain.Song, 0, DailyCount)
	for _, idx := range picks {
		out = append(out, pool[idx])
	}
	return out, nil
}

// Random returns one uniformly random song for free play.
func (s *Selector) Random() (domain.Song, error) {
	all, err := s.catalog.Songs()
	if err != nil {
		return domain.Song{}, fmt.Errorf("selector: load songs: %w", err)
	}
	if len(all) == 0 {
		return domain.Song{}, domain.ErrInsufficientCatalog
	}
	return all[rand.Intn(len(all))], nil
}

// dateSeed reduces an ISO date string to a bounded deterministic seed.
func dateSeed(date string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(date))
	return h.Sum32() % seedRange
}
