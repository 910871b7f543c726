package ports

import "github.com/yearworm/backend/internal/core/domain"

// CatalogRepository persists the song collection and the curated schedule.
// Reads return consistent snapshots; writes replace the backing store
// atomically.
type CatalogRepository interface {
	Songs() ([]domain.Song, error)
	SaveSongs(songs []domain.Song) error
	// AppendSong adds one song, rejecting case-insensitive duplicates with
	// domain.ErrDuplicateSong.
	AppendSong(song domain.Song) error
	Schedule() (domain.Schedule, error)
	// SetScheduleDay replaces the curated set for a date. More than five
	// songs is rejected with domain.ErrScheduleDayFull.
	SetScheduleDay(date string, songs []domain.Song) error
}

// SongSelector serves songs to game rounds.
type SongSelector interface {
	// Daily returns the five songs for a date, preferring the curated
	// schedule over deterministic sampling.
	Daily(date string) ([]domain.Song, error)
	// Random returns one uniformly random song for free play.
	Random() (domain.Song, error)
}
