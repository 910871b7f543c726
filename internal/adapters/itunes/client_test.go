package itunes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yearworm/backend/internal/adapters/itunes"
)

func TestSearchSongs(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		wantCount  int
		expectErr  bool
	}{
		{
			name:       "successful search",
			statusCode: http.StatusOK,
			response: `{
				"resultCount": 2,
				"results": [
					{
						"wrapperType": "track",
						"trackName": "Hey Jude",
						"artistName": "The Beatles",
						"previewUrl": "https://audio.example/hey-jude.m4a",
						"collectionName": "Hey Jude"
					},
					{
						"wrapperType": "track",
						"trackName": "Hey Jude (Karaoke Version)",
						"artistName": "Karaoke Crew",
						"previewUrl": "https://audio.example/karaoke.m4a"
					}
				]
			}`,
			wantCount: 2,
		},
		{
			name:       "empty result set",
			statusCode: http.StatusOK,
			response:   `{"resultCount": 0, "results": []}`,
			wantCount:  0,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			response:   `boom`,
			expectErr:  true,
		},
		{
			name:       "malformed payload",
			statusCode: http.StatusOK,
			response:   `{"results": [`,
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ITUNES_RETRY_BACKOFF_MS", "1")
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected URL path /search, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("entity"); got != "song" {
					t.Errorf("entity: got %q, want %q", got, "song")
				}
				if got := r.URL.Query().Get("limit"); got != "25" {
					t.Errorf("limit: got %q, want %q", got, "25")
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			}))
			defer ts.Close()

			client := itunes.NewClient(http.DefaultClient, ts.URL)
			songs, err := client.SearchSongs(context.Background(), "Hey Jude The Beatles", 25)

			if (err != nil) != tt.expectErr {
				t.Fatalf("expected error: %v, got: %v", tt.expectErr, err)
			}
			if err != nil {
				return
			}
			if len(songs) != tt.wantCount {
				t.Fatalf("result count: got %d, want %d", len(songs), tt.wantCount)
			}
			if tt.wantCount > 0 && songs[0].PreviewURL != "https://audio.example/hey-jude.m4a" {
				t.Errorf("PreviewURL: got %q", songs[0].PreviewURL)
			}
		})
	}
}

func TestSearchSongsByArtist(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("attribute"); got != "songTerm" {
			t.Errorf("attribute: got %q, want %q", got, "songTerm")
		}
		if got := r.URL.Query().Get("artistTerm"); got != "Queen" {
			t.Errorf("artistTerm: got %q, want %q", got, "Queen")
		}
		w.Write([]byte(`{"results": [{"wrapperType": "track", "trackName": "Bohemian Rhapsody", "artistName": "Queen", "previewUrl": "https://audio.example/bo.m4a"}]}`))
	}))
	defer ts.Close()

	client := itunes.NewClient(http.DefaultClient, ts.URL)
	songs, err := client.SearchSongsByArtist(context.Background(), "Bohemian Rhapsody", "Queen", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(songs) != 1 || songs[0].TrackName != "Bohemian Rhapsody" {
		t.Fatalf("unexpected songs: %+v", songs)
	}
}

func TestAlbumTracksFiltersNonTrackEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookup" {
			t.Errorf("expected URL path /lookup, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "42" {
			t.Errorf("id: got %q, want %q", got, "42")
		}
		w.Write([]byte(`{
			"results": [
				{"wrapperType": "collection", "collectionName": "A Night at the Opera", "collectionId": 42},
				{"wrapperType": "track", "trackName": "Bohemian Rhapsody", "previewUrl": "https://audio.example/bo.m4a"},
				{"wrapperType": "track", "trackName": "Love of My Life", "previewUrl": "https://audio.example/loml.m4a"}
			]
		}`))
	}))
	defer ts.Close()

	client := itunes.NewClient(http.DefaultClient, ts.URL)
	tracks, err := client.AlbumTracks(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("track count: got %d, want 2", len(tracks))
	}
	if tracks[0].TrackName != "Bohemian Rhapsody" {
		t.Errorf("first track: got %q", tracks[0].TrackName)
	}
}

func TestSearchAlbums(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("entity"); got != "album" {
			t.Errorf("entity: got %q, want %q", got, "album")
		}
		w.Write([]byte(`{
			"results": [
				{"wrapperType": "collection", "collectionId": 7, "collectionName": "Thriller", "collectionType": "Album"},
				{"wrapperType": "collection", "collectionId": 8, "collectionName": "Live in Bucharest", "collectionType": "Album"}
			]
		}`))
	}))
	defer ts.Close()

	client := itunes.NewClient(http.DefaultClient, ts.URL)
	albums, err := client.SearchAlbums(context.Background(), "Michael Jackson", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(albums) != 2 {
		t.Fatalf("album count: got %d, want 2", len(albums))
	}
	if albums[0].CollectionID != 7 || albums[0].CollectionType != "Album" {
		t.Errorf("first album: got %+v", albums[0])
	}
}
