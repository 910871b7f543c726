// Package matcher resolves a playable preview reference for a title/artist
// pair through ranked, multi-strategy search against an external catalog
// index.
package matcher

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yearworm/backend/internal/core/ports"
	"github.com/yearworm/backend/internal/normalize"
)

// Config carries the matcher's tunables. The defaults are inherited from
// the original curation workflow and are not known to be optimal.
type Config struct {
	// ScoreCutoff is the score a ranked candidate must strictly exceed to
	// win strategy one.
	ScoreCutoff float64
	// CallTimeout bounds every individual external call.
	CallTimeout time.Duration

	CombinedLimit int
	ArtistLimit   int
	AlbumLimit    int
	AlbumsToTry   int
}

// DefaultConfig returns the matcher defaults.
func DefaultConfig() Config {
	return Config{
		ScoreCutoff:   0,
		CallTimeout:   10 * time.Second,
		CombinedLimit: 25,
		ArtistLimit:   10,
		AlbumLimit:    10,
		AlbumsToTry:   3,
	}
}

// Resolver runs the three resolution strategies in order, short-circuiting
// on the first hit. External failures never escape: a failed call simply
// yields no candidates for that strategy.
type Resolver struct {
	provider ports.SearchProvider
	cfg      Config
}

// compile-time interface assertion
var _ ports.PreviewResolver = (*Resolver)(nil)

// New constructs a Resolver. Zero config fields fall back to defaults.
func New(provider ports.SearchProvider, cfg Config) *Resolver {
	def := DefaultConfig()
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	if cfg.CombinedLimit <= 0 {
		cfg.CombinedLimit = def.CombinedLimit
	}
	if cfg.ArtistLimit <= 0 {
		cfg.ArtistLimit = def.ArtistLimit
	}
	if cfg.AlbumLimit <= 0 {
		cfg.AlbumLimit = def.AlbumLimit
	}
	if cfg.AlbumsToTry <= 0 {
		cfg.AlbumsToTry = def.AlbumsToTry
	}
	return &Resolver{provider: provider, cfg: cfg}
}

// Resolve returns the preview reference for the best-matching canonical
// recording, or an error wrapping ports.ErrPreviewNotFound once every
// strategy is exhausted.
func (r *Resolver) Resolve(ctx context.Context, title, artist string) (string, error) {
	primary := normalize.PrimaryArtist(artist)

	if url, ok := r.combinedSearch(ctx, title, primary); ok {
		return url, nil
	}
	if url, ok := r.artistScopedSearch(ctx, title, primary); ok {
		return url, nil
	}
	if url, ok := r.albumDrillDown(ctx, title, primary); ok {
		return url, nil
	}

	return "", fmt.Errorf("matcher: %w", &ports.PreviewNotFoundError{Title: title, Artist: artist})
}

// combinedSearch is strategy one: a single free-text query for title and
// artist together, ranked by the additive score.
func (r *Resolver) combinedSearch(ctx context.Context, title, artist string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	results, err := r.provider.SearchSongs(callCtx, title+" "+artist, r.cfg.CombinedLimit)
	if err != nil {
		log.Printf("WARN matcher: combined search for %q failed: %v", title, err)
		return "", false
	}

	best, score, found := rank(title, artist, results)
	if !found || score <= r.cfg.ScoreCutoff {
		return "", false
	}
	return best.PreviewURL, true
}

// artistScopedSearch is strategy two: the title searched with an explicit
// artist filter. An exact title match wins, otherwise the first result.
func (r *Resolver) artistScopedSearch(ctx context.Context, title, artist string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()

	results, err := r.provider.SearchSongsByArtist(callCtx, title, artist, r.cfg.ArtistLimit)
	if err != nil {
		log.Printf("WARN matcher: artist-scoped search for %q failed: %v", title, err)
		return "", false
	}
	if len(results) == 0 {
		return "", false
	}

	for _, candidate := range results {
		if strings.EqualFold(candidate.TrackName, title) {
			return candidate.PreviewURL, true
		}
	}
	return results[0].PreviewURL, true
}

// albumDrillDown is strategy three: walk the artist's studio albums and
// take the first track whose name contains the title. Substring matching
// can pick a wrong song sharing a common word; kept as-is for now.
func (r *Resolver) albumDrillDown(ctx context.Context, title, artist string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	albums, err := r.provider.SearchAlbums(callCtx, artist, r.cfg.AlbumLimit)
	cancel()
	if err != nil {
		log.Printf("WARN matcher: album search for %q failed: %v", artist, err)
		return "", false
	}

	titleLower := strings.ToLower(title)
	tried := 0
	for _, album := range albums {
		if album.CollectionType != "Album" || strings.Contains(strings.ToLower(album.CollectionName), "live") {
			continue
		}
		if tried == r.cfg.AlbumsToTry {
			break
		}
		tried++

		trackCtx, cancelTracks := context.WithTimeout(ctx, r.cfg.CallTimeout)
		tracks, err := r.provider.AlbumTracks(trackCtx, album.CollectionID)
		cancelTracks()
		if err != nil {
			log.Printf("WARN matcher: lookup of album %d failed: %v", album.CollectionID, err)
			continue
		}

		for _, track := range tracks {
			if strings.Contains(strings.ToLower(track.TrackName), titleLower) {
				return track.PreviewURL, true
			}
		}
	}

	return "", false
}
