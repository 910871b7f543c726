package dedup

import (
	"sort"

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/normalize"
)

// DecadeDistribution buckets songs by release decade.
func DecadeDistribution(songs []domain.Song) map[int]int {
	counts := map[int]int{}
	for _, song := range songs {
		counts[song.Year/10*10]++
	}
	return counts
}

// ArtistCount is one row of the artist-frequency ranking.
type ArtistCount struct {
	Artist string
	Count  int
}

// TopArtists returns the n most frequent primary artists, most frequent
// first. Equal counts keep first-appearance order.
func TopArtists(songs []domain.Song, n int) []ArtistCount {
	counts := map[string]int{}
	var order []string
	for _, song := range songs {
		artist := normalize.PrimaryArtist(song.Artist)
		if _, ok := counts[artist]; !ok {
			order = append(order, artist)
		}
		counts[artist]++
	}

	out := make([]ArtistCount, 0, len(order))
	for _, artist := range order {
		out = append(out, ArtistCount{Artist: artist, Count: counts[artist]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
