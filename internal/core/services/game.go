// Package services holds the application core: game session lifecycle,
// round serving and catalog curation, wired to the outside world through
// ports.
package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/core/ports"
)

// GameService coordinates game sessions against the catalog, the preview
// resolver and the result history.
type GameService struct {
	songs    ports.SongSelector
	catalog  ports.CatalogRepository
	resolver ports.PreviewResolver
	results  ports.ResultRepository
	cache    ports.PreviewCache

	mu    sync.Mutex
	games map[string]*domain.Game

	now func() time.Time
}

// NewGameService constructs a GameService. cache may be nil when no
// prefetcher is running.
func NewGameService(
	songs ports.SongSelector,
	catalog ports.CatalogRepository,
	resolver ports.PreviewResolver,
	results ports.ResultRepository,
	cache ports.PreviewCache,
) *GameService {
	return &GameService{
		songs:    songs,
		catalog:  catalog,
		resolver: resolver,
		results:  results,
		cache:    cache,
		games:    map[string]*domain.Game{},
		now:      time.Now,
	}
}

// RoundInfo is everything a client needs to play one round. Title and
// Artist are withheld unless the game's options reveal them.
type RoundInfo struct {
	Title       string
	Artist      string
	PreviewURL  string
	Round       int
	TotalRounds int
	Score       int
	GameOver    bool
	FinalScore  int
}

// today returns the ISO day used for daily sets and result records.
func (s *GameService) today() string {
	return s.now().Format("2006-01-02")
}

// StartGame creates a session. A daily game locks in today's five songs at
// start so a set rollover at midnight cannot split a session.
func (s *GameService) StartGame(ctx context.Context, mode domain.Mode, opts domain.Options) (string, error) {
	game := &domain.Game{
		ID:      uuid.NewString(),
		Mode:    mode,
		Options: opts,
		Score:   domain.StartingScore,
	}

	if mode == domain.ModeDaily {
		daily, err := s.songs.Daily(s.today())
		if err != nil {
			return "", fmt.Errorf("service: load daily songs: %w", err)
		}
		game.DailySongs = daily
	}

	s.mu.Lock()
	s.games[game.ID] = game
	s.mu.Unlock()

	return game.ID, nil
}

// RoundSong serves the current round's song. The preview URL comes from
// the prefetch cache when available, otherwise the resolver runs inline; a
// failed resolution degrades to an empty URL rather than blocking play.
func (s *GameService) RoundSong(ctx context.Context, gameID string) (RoundInfo, error) {
	s.mu.Lock()
	game, ok := s.games[gameID]
	if !ok {
		s.mu.Unlock()
		return RoundInfo{}, domain.ErrGameNotFound
	}

	if game.Over {
		info := RoundInfo{
			Round:       game.Round,
			TotalRounds: game.TotalRounds(),
			Score:       game.Score,
			GameOver:    true,
			FinalScore:  game.Score,
		}
		s.mu.Unlock()
		return info, nil
	}

	if game.Current == nil {
		if err := s.assignCurrent(game); err != nil {
			s.mu.Unlock()
			return RoundInfo{}, err
		}
	}
	song := *game.Current
	info := RoundInfo{
		Round: game.Round,
		Score: game.Score,
	}
	if game.Mode == domain.ModeDaily {
		info.TotalRounds = game.TotalRounds()
	}
	if game.Options.ShowTitle {
		info.Title = song.Title
	}
	if game.Options.ShowArtist {
		info.Artist = song.Artist
	}
	s.mu.Unlock()

	info.PreviewURL = s.previewFor(ctx, song)
	return info, nil
}

// assignCurrent picks the song for the round. Caller holds the lock.
func (s *GameService) assignCurrent(game *domain.Game) error {
	if game.Mode == domain.ModeDaily {
		if game.Round >= len(game.DailySongs) {
			return fmt.Errorf("service: round %d beyond daily set: %w", game.Round, domain.ErrNoActiveSong)
		}
		game.Current = &game.DailySongs[game.Round]
		return nil
	}

	song, err := s.songs.Random()
	if err != nil {
		return fmt.Errorf("service: pick free-play song: %w", err)
	}
	game.Current = &song
	return nil
}

func (s *GameService) previewFor(ctx context.Context, song domain.Song) string {
	if s.cache != nil {
		if url, ok := s.cache.Lookup(song.Title, song.Artist); ok {
			return url
		}
	}
	url, err := s.resolver.Resolve(ctx, song.Title, song.Artist)
	if err != nil {
		log.Printf("WARN service: no preview for %q by %q: %v", song.Title, song.Artist, err)
		return ""
	}
	return url
}

// Guess applies a year guess. A finished game is recorded in the result
// history; recording failures are logged and do not fail the guess.
func (s *GameService) Guess(ctx context.Context, gameID string, year int) (domain.GuessOutcome, error) {
	s.mu.Lock()
	game, ok := s.games[gameID]
	if !ok {
		s.mu.Unlock()
		return domain.GuessOutcome{}, domain.ErrGameNotFound
	}

	outcome, err := game.ApplyGuess(year)
	if err != nil {
		s.mu.Unlock()
		return domain.GuessOutcome{}, fmt.Errorf("service: apply guess: %w", err)
	}
	result := domain.GameResult{
		ID:    game.ID,
		Date:  s.today(),
		Mode:  game.Mode,
		Score: game.Score,
	}
	s.mu.Unlock()

	if outcome.GameOver && s.results != nil {
		if err := s.results.RecordResult(ctx, result); err != nil {
			log.Printf("WARN service: record result for game %s: %v", game.ID, err)
		}
	}
	return outcome, nil
}

// EndGame closes a session and records its score. Daily games record
// themselves on the final guess; ending one again is a no-op record-wise.
func (s *GameService) EndGame(ctx context.Context, gameID string) (int, error) {
	s.mu.Lock()
	game, ok := s.games[gameID]
	if !ok {
		s.mu.Unlock()
		return 0, domain.ErrGameNotFound
	}
	delete(s.games, gameID)
	alreadyRecorded := game.Over
	game.Over = true
	result := domain.GameResult{
		ID:    game.ID,
		Date:  s.today(),
		Mode:  game.Mode,
		Score: game.Score,
	}
	s.mu.Unlock()

	if !alreadyRecorded && s.results != nil {
		if err := s.results.RecordResult(ctx, result); err != nil {
			log.Printf("WARN service: record result for game %s: %v", result.ID, err)
		}
	}
	return result.Score, nil
}

// AddSong appends one song to the catalog.
func (s *GameService) AddSong(ctx context.Context, song domain.Song) error {
	if err := s.catalog.AppendSong(song); err != nil {
		return fmt.Errorf("service: add song: %w", err)
	}
	return nil
}

// SetCuratedDay replaces the curated set for a date.
func (s *GameService) SetCuratedDay(ctx context.Context, date string, songs []domain.Song) error {
	if err := s.catalog.SetScheduleDay(date, songs); err != nil {
		return fmt.Errorf("service: set curated day: %w", err)
	}
	return nil
}

// Stats summarizes recorded games per mode.
type Stats struct {
	DailyAverage float64 `json:"daily_average"`
	DailyGames   int     `json:"daily_games"`
	FreeAverage  float64 `json:"free_average"`
	FreeGames    int     `json:"free_games"`
	TodayGames   int     `json:"today_games"`
}

// Stats aggregates the result history for the stats surface.
func (s *GameService) Stats(ctx context.Context) (Stats, error) {
	if s.results == nil {
		return Stats{}, nil
	}

	var stats Stats
	var err error
	stats.DailyAverage, stats.DailyGames, err = s.results.AverageScore(ctx, domain.ModeDaily)
	if err != nil {
		return Stats{}, fmt.Errorf("service: daily stats: %w", err)
	}
	stats.FreeAverage, stats.FreeGames, err = s.results.AverageScore(ctx, domain.ModeFree)
	if err != nil {
		return Stats{}, fmt.Errorf("service: free-play stats: %w", err)
	}
	today, err := s.results.ResultsForDate(ctx, s.today())
	if err != nil {
		return Stats{}, fmt.Errorf("service: today's results: %w", err)
	}
	stats.TodayGames = len(today)
	return stats, nil
}
