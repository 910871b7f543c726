package ports

import "context"

// SongResult is one recording candidate returned by the external search
// index.
type SongResult struct {
	TrackName      string
	ArtistName     string
	PreviewURL     string
	Popularity     float64 // zero when the index reports none
	CollectionName string
}

// AlbumResult is one album candidate returned by the external search index.
type AlbumResult struct {
	CollectionID   int64
	CollectionName string
	CollectionType string
}

// SearchProvider is the external music-catalog search index consumed by the
// preview matcher. Implementations surface transport failures as errors;
// the matcher decides how to degrade.
type SearchProvider interface {
	// SearchSongs runs a free-text recording search.
	SearchSongs(ctx context.Context, term string, limit int) ([]SongResult, error)
	// SearchSongsByArtist runs a title search scoped to an artist filter.
	SearchSongsByArtist(ctx context.Context, title, artist string, limit int) ([]SongResult, error)
	// SearchAlbums runs a free-text album search for an artist.
	SearchAlbums(ctx context.Context, artist string, limit int) ([]AlbumResult, error)
	// AlbumTracks returns the track listing of an album.
	AlbumTracks(ctx context.Context, collectionID int64) ([]SongResult, error)
}
