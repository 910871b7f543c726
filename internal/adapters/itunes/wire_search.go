package itunes

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yearworm/backend/internal/core/ports"
)

// searchResult mirrors one entry of an iTunes search or lookup response.
// Song and album payloads share the envelope; unset fields decode to zero.
type searchResult struct {
	WrapperType     string  `json:"wrapperType"`
	TrackName       string  `json:"trackName"`
	ArtistName      string  `json:"artistName"`
	PreviewURL      string  `json:"previewUrl"`
	TrackPopularity float64 `json:"trackPopularity"`
	CollectionID    int64   `json:"collectionId"`
	CollectionName  string  `json:"collectionName"`
	CollectionType  string  `json:"collectionType"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// SearchSongs runs a free-text recording search.
func (c *Client) SearchSongs(ctx context.Context, term string, limit int) ([]ports.SongResult, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", strconv.Itoa(limit))

	var body searchResponse
	if err := c.getJSON(ctx, "/search", query, &body); err != nil {
		return nil, err
	}

	return mapSongs(body.Results), nil
}

// SearchSongsByArtist runs a title search scoped to an artist filter.
func (c *Client) SearchSongsByArtist(ctx context.Context, title, artist string, limit int) ([]ports.SongResult, error) {
	query := url.Values{}
	query.Set("term", title)
	query.Set("attribute", "songTerm")
	query.Set("artistTerm", artist)
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", strconv.Itoa(limit))

	var body searchResponse
	if err := c.getJSON(ctx, "/search", query, &body); err != nil {
		return nil, err
	}

	return mapSongs(body.Results), nil
}

// SearchAlbums runs a free-text album search for an artist.
func (c *Client) SearchAlbums(ctx context.Context, artist string, limit int) ([]ports.AlbumResult, error) {
	query := url.Values{}
	query.Set("term", artist)
	query.Set("media", "music")
	query.Set("entity", "album")
	query.Set("limit", strconv.Itoa(limit))

	var body searchResponse
	if err := c.getJSON(ctx, "/search", query, &body); err != nil {
		return nil, err
	}

	albums := make([]ports.AlbumResult, 0, len(body.Results))
	for _, r := range body.Results {
		albums = append(albums, ports.AlbumResult{
			CollectionID:   r.CollectionID,
			CollectionName: r.CollectionName,
			CollectionType: r.CollectionType,
		})
	}
	return albums, nil
}

// AlbumTracks returns the track listing of an album. Lookup responses
// interleave the collection wrapper with its tracks; only track entries
// are returned.
func (c *Client) AlbumTracks(ctx context.Context, collectionID int64) ([]ports.SongResult, error) {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(collectionID, 10))
	query.Set("entity", "song")

	var body searchResponse
	if err := c.getJSON(ctx, "/lookup", query, &body); err != nil {
		return nil, err
	}

	tracks := make([]ports.SongResult, 0, len(body.Results))
	for _, r := range body.Results {
		if r.WrapperType != "track" {
			continue
		}
		tracks = append(tracks, mapSong(r))
	}
	return tracks, nil
}

func mapSongs(results []searchResult) []ports.SongResult {
	songs := make([]ports.SongResult, 0, len(results))
	for _, r := range results {
		songs = append(songs, mapSong(r))
	}
	return songs
}

func mapSong(r searchResult) ports.SongResult {
	return ports.SongResult{
		TrackName:      r.TrackName,
		ArtistName:     r.ArtistName,
		PreviewURL:     r.PreviewURL,
		Popularity:     r.TrackPopularity,
		CollectionName: r.CollectionName,
	}
}
