// Package catalog implements the catalog repository port over JSON files
// on disk, with change detection so edits made by the curator CLI show up
// in a running server without a restart.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/core/ports"
)

const (
	songsFile   = "songs.json"
	curatedFile = "curated_songs.json"
)

// Store is a file-backed catalog repository. Reads serve an in-memory
// snapshot; writes go to disk first and update the snapshot on success.
type Store struct {
	dir string

	mu       sync.RWMutex
	songs    []domain.Song
	schedule domain.Schedule

	watcher *fsnotify.Watcher
	done    chan struct{}
}

var _ ports.CatalogRepository = (*Store)(nil)

// New opens the catalog in dir, creating it if needed. A missing songs
// file is seeded with the starter catalog; a missing curated file means an
// empty schedule.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("catalog store: create data dir: %w", err)
	}

	s := &Store{dir: dir, schedule: domain.Schedule{}}

	songs, err := readSongs(s.songsPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		songs = starterSongs()
		if err := writeJSONAtomic(s.songsPath(), songs); err != nil {
			return nil, fmt.Errorf("catalog store: seed starter catalog: %w", err)
		}
		log.Printf("INFO catalog store: seeded %s with %d starter songs", songsFile, len(songs))
	case err != nil:
		return nil, err
	}
	s.songs = songs

	schedule, err := readSchedule(s.curatedPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No curated file yet; every day falls back to sampling.
	case err != nil:
		return nil, err
	default:
		s.schedule = schedule
	}

	return s, nil
}

func (s *Store) songsPath() string   { return filepath.Join(s.dir, songsFile) }
func (s *Store) curatedPath() string { return filepath.Join(s.dir, curatedFile) }

// Watch starts reloading the snapshot whenever either backing file is
// rewritten. Call Close to stop.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog store: start watcher: %w", err)
	}
	// Watching the directory rather than the files survives the
	// rename step of an atomic rewrite.
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("catalog store: watch %s: %w", s.dir, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop()
	return nil
}

// Close stops the watcher if one is running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	<-s.done
	return err
}

func (s *Store) watchLoop() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			switch filepath.Base(event.Name) {
			case songsFile:
				s.reloadSongs()
			case curatedFile:
				s.reloadSchedule()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("WARN catalog store: watcher error: %v", err)
		}
	}
}

// reloadSongs swaps in the songs file from disk. A malformed file keeps
// the previous snapshot.
func (s *Store) reloadSongs() {
	songs, err := readSongs(s.songsPath())
	if err != nil {
		log.Printf("WARN catalog store: reload %s: %v", songsFile, err)
		return
	}
	s.mu.Lock()
	s.songs = songs
	s.mu.Unlock()
	log.Printf("INFO catalog store: reloaded %s (%d songs)", songsFile, len(songs))
}

func (s *Store) reloadSchedule() {
	schedule, err := readSchedule(s.curatedPath())
	if err != nil {
		log.Printf("WARN catalog store: reload %s: %v", curatedFile, err)
		return
	}
	s.mu.Lock()
	s.schedule = schedule
	s.mu.Unlock()
	log.Printf("INFO catalog store: reloaded %s (%d days)", curatedFile, len(schedule))
}

// Songs returns a copy of the catalog snapshot.
func (s *Store) Songs() ([]domain.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Song, len(s.songs))
	copy(out, s.songs)
	return out, nil
}

// SaveSongs replaces the whole catalog on disk and in memory.
func (s *Store) SaveSongs(songs []domain.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeJSONAtomic(s.songsPath(), songs); err != nil {
		return fmt.Errorf("catalog store: save songs: %w", err)
	}
	s.songs = make([]domain.Song, len(songs))
	copy(s.songs, songs)
	return nil
}

// AppendSong adds one song, rejecting a case-insensitive duplicate.
func (s *Store) AppendSong(song domain.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := song.Key()
	for _, existing := range s.songs {
		if existing.Key() == key {
			return fmt.Errorf("catalog store: %q by %q: %w", song.Title, song.Artist, domain.ErrDuplicateSong)
		}
	}
	next := make([]domain.Song, 0, len(s.songs)+1)
	next = append(next, s.songs...)
	next = append(next, song)
	if err := writeJSONAtomic(s.songsPath(), next); err != nil {
		return fmt.Errorf("catalog store: append song: %w", err)
	}
	s.songs = next
	return nil
}

// Schedule returns a copy of the curated schedule.
func (s *Store) Schedule() (domain.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Schedule, len(s.schedule))
	for date, songs := range s.schedule {
		day := make([]domain.Song, len(songs))
		copy(day, songs)
		out[date] = day
	}
	return out, nil
}

// SetScheduleDay replaces the curated set for a date.
func (s *Store) SetScheduleDay(date string, songs []domain.Song) error {
	if len(songs) > domain.DailyRounds {
		return fmt.Errorf("catalog store: %d songs for %s: %w", len(songs), date, domain.ErrScheduleDayFull)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(domain.Schedule, len(s.schedule)+1)
	for d, day := range s.schedule {
		next[d] = day
	}
	day := make([]domain.Song, len(songs))
	copy(day, songs)
	next[date] = day
	if err := writeJSONAtomic(s.curatedPath(), next); err != nil {
		return fmt.Errorf("catalog store: save schedule: %w", err)
	}
	s.schedule = next
	return nil
}

func readSongs(path string) ([]domain.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var songs []domain.Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("catalog store: parse %s: %w: %v", filepath.Base(path), domain.ErrMalformedCatalog, err)
	}
	return songs, nil
}

func readSchedule(path string) (domain.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schedule domain.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return nil, fmt.Errorf("catalog store: parse %s: %w: %v", filepath.Base(path), domain.ErrMalformedCatalog, err)
	}
	if schedule == nil {
		schedule = domain.Schedule{}
	}
	return schedule, nil
}

// writeJSONAtomic writes v to a temp file in the target directory and
// renames it into place so readers never see a partial file.
func writeJSONAtomic(path string, v any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".yearworm-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
