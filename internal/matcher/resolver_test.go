package matcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yearworm/backend/internal/core/ports"
	"github.com/yearworm/backend/internal/matcher"
)

// fakeProvider scripts the three search surfaces and records what was
// asked of it.
type fakeProvider struct {
	songs       []ports.SongResult
	songsErr    error
	byArtist    []ports.SongResult
	byArtistErr error
	albums      []ports.AlbumResult
	albumsErr   error
	tracks      map[int64][]ports.SongResult
	tracksErr   error

	calls []string
	terms []string
}

func (f *fakeProvider) SearchSongs(_ context.Context, term string, _ int) ([]ports.SongResult, error) {
	f.calls = append(f.calls, "songs")
	f.terms = append(f.terms, term)
	return f.songs, f.songsErr
}

func (f *fakeProvider) SearchSongsByArtist(_ context.Context, title, artist string, _ int) ([]ports.SongResult, error) {
	f.calls = append(f.calls, "byArtist")
	f.terms = append(f.terms, title+"|"+artist)
	return f.byArtist, f.byArtistErr
}

func (f *fakeProvider) SearchAlbums(_ context.Context, artist string, _ int) ([]ports.AlbumResult, error) {
	f.calls = append(f.calls, "albums")
	f.terms = append(f.terms, artist)
	return f.albums, f.albumsErr
}

func (f *fakeProvider) AlbumTracks(_ context.Context, collectionID int64) ([]ports.SongResult, error) {
	f.calls = append(f.calls, "tracks")
	if f.tracksErr != nil {
		return nil, f.tracksErr
	}
	return f.tracks[collectionID], nil
}

func TestResolveStrategyOneShortCircuits(t *testing.T) {
	provider := &fakeProvider{
		songs: []ports.SongResult{
			{TrackName: "Hey Jude", ArtistName: "The Beatles", PreviewURL: "https://audio.example/hey-jude.m4a"},
		},
	}
	r := matcher.New(provider, matcher.DefaultConfig())

	url, err := r.Resolve(context.Background(), "Hey Jude", "The Beatles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://audio.example/hey-jude.m4a" {
		t.Fatalf("url: got %q", url)
	}
	if len(provider.calls) != 1 || provider.calls[0] != "songs" {
		t.Fatalf("calls: got %v, want only the combined search", provider.calls)
	}
}

func TestResolveUsesPrimaryArtistInQuery(t *testing.T) {
	provider := &fakeProvider{
		songs: []ports.SongResult{
			{TrackName: "Love The Way You Lie", ArtistName: "Eminem", PreviewURL: "u"},
		},
	}
	r := matcher.New(provider, matcher.DefaultConfig())

	if _, err := r.Resolve(context.Background(), "Love The Way You Lie", "Eminem ft. Rihanna"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.terms[0] != "Love The Way You Lie Eminem" {
		t.Fatalf("combined term: got %q", provider.terms[0])
	}
}

func TestResolveFallsBackToArtistScopedSearch(t *testing.T) {
	provider := &fakeProvider{
		// Artist only partially matches and the karaoke penalty drags the
		// total below the cutoff, so strategy one yields nothing.
		songs: []ports.SongResult{
			{TrackName: "Something Else (Karaoke)", ArtistName: "The Beatles Tribute", PreviewURL: "bad"},
		},
		byArtist: []ports.SongResult{
			{TrackName: "Hey Jude - single", ArtistName: "The Beatles", PreviewURL: "second-pick"},
			{TrackName: "Hey Jude", ArtistName: "The Beatles", PreviewURL: "exact-pick"},
		},
	}
	r := matcher.New(provider, matcher.DefaultConfig())

	url, err := r.Resolve(context.Background(), "Hey Jude", "The Beatles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "exact-pick" {
		t.Fatalf("url: got %q, want the exact title match", url)
	}
}

func TestResolveArtistScopedFallsBackToFirstResult(t *testing.T) {
	provider := &fakeProvider{
		byArtist: []ports.SongResult{
			{TrackName: "Hey Jude - Remastered", ArtistName: "The Beatles", PreviewURL: "first"},
			{TrackName: "Hey Jude - Mono", ArtistName: "The Beatles", PreviewURL: "second"},
		},
	}
	r := matcher.New(provider, matcher.DefaultConfig())

	url, err := r.Resolve(context.Background(), "Hey Jude", "The Beatles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "first" {
		t.Fatalf("url: got %q, want %q", url, "first")
	}
}

func TestResolveAlbumDrillDown(t *testing.T) {
	provider := &fakeProvider{
		albums: []ports.AlbumResult{
			{CollectionID: 1, CollectionName: "Live at Wembley", CollectionType: "Album"},
			{CollectionID: 2, CollectionName: "Greatest Hits", CollectionType: "Compilation"},
			{CollectionID: 3, CollectionName: "A Night at the Opera", CollectionType: "Album"},
		},
		tracks: map[int64][]ports.SongResult{
			3: {
				{TrackName: "Love of My Life", PreviewURL: "loml"},
				{TrackName: "Bohemian Rhapsody", PreviewURL: "https://audio.example/bo.m4a"},
			},
		},
	}
	r := matcher.New(provider, matcher.DefaultConfig())

	url, err := r.Resolve(context.Background(), "Bohemian Rhapsody", "Queen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://audio.example/bo.m4a" {
		t.Fatalf("url: got %q", url)
	}
	// The live album and the compilation must both be skipped, so only
	// collection 3 is looked up.
	want := []string{"songs", "byArtist", "albums", "tracks"}
	if len(provider.calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", provider.calls, want)
	}
	for i := range want {
		if provider.calls[i] != want[i] {
			t.Fatalf("calls: got %v, want %v", provider.calls, want)
		}
	}
}

func TestResolveExhaustedReturnsNotFound(t *testing.T) {
	provider := &fakeProvider{}
	r := matcher.New(provider, matcher.DefaultConfig())

	_, err := r.Resolve(context.Background(), "Unknown Song", "Unknown Artist")
	if !errors.Is(err, ports.ErrPreviewNotFound) {
		t.Fatalf("expected ErrPreviewNotFound, got %v", err)
	}
}

func TestResolveAbsorbsProviderFailures(t *testing.T) {
	boom := errors.New("connection reset")
	provider := &fakeProvider{
		songsErr:    boom,
		byArtistErr: boom,
		albumsErr:   boom,
	}
	r := matcher.New(provider, matcher.DefaultConfig())

	_, err := r.Resolve(context.Background(), "Imagine", "John Lennon")
	if !errors.Is(err, ports.ErrPreviewNotFound) {
		t.Fatalf("expected ErrPreviewNotFound, got %v", err)
	}
	if errors.Is(err, boom) {
		t.Fatal("provider failure leaked out of the resolver")
	}
	// All three strategies must still have been attempted.
	want := []string{"songs", "byArtist", "albums"}
	if len(provider.calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", provider.calls, want)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	provider := &fakeProvider{}
	r := matcher.New(provider, matcher.Config{CallTimeout: time.Second})

	_, err := r.Resolve(context.Background(), "", "")
	if !errors.Is(err, ports.ErrPreviewNotFound) {
		t.Fatalf("expected ErrPreviewNotFound, got %v", err)
	}
}

func TestResolveConfigurableCutoff(t *testing.T) {
	provider := &fakeProvider{
		songs: []ports.SongResult{
			// Scores 150: partial artist, exact title.
			{TrackName: "Imagine", ArtistName: "John Lennon Band", PreviewURL: "weak"},
		},
	}
	cfg := matcher.DefaultConfig()
	cfg.ScoreCutoff = 150
	r := matcher.New(provider, cfg)

	_, err := r.Resolve(context.Background(), "Imagine", "John Lennon")
	if !errors.Is(err, ports.ErrPreviewNotFound) {
		t.Fatalf("cutoff 150 should reject a score of exactly 150, got %v", err)
	}
}
