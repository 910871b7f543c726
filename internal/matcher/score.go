package matcher

import (
	"math"
	"strings"

	"github.com/yearworm/backend/internal/core/ports"
)

const (
	artistExactBonus    = 100
	artistPartialBonus  = 50
	titleExactBonus     = 100
	titlePartialBonus   = 50
	titleFuzzyBonus     = 25
	collectionHitBonus  = 30
	collectionAnyBonus  = 10
	popularityBonusCap  = 20
	fuzzyOverlapPortion = 0.5
)

// versionPenalties mark recordings that are almost never the canonical
// studio cut.
var versionPenalties = []struct {
	marker  string
	penalty float64
}{
	{"cover", 50},
	{"tribute", 50},
	{"karaoke", 100},
	{"live", 30},
	{"acoustic", 20},
	{"instrumental", 40},
	{"remix", 30},
}

// score rates one candidate against the query. A candidate with no artist
// match at all is discarded (second return false).
func score(title, artist string, candidate ports.SongResult) (float64, bool) {
	var (
		total           float64
		artistLower     = strings.ToLower(artist)
		titleLower      = strings.ToLower(title)
		candidateArtist = strings.ToLower(candidate.ArtistName)
		candidateTitle  = strings.ToLower(candidate.TrackName)
	)

	switch {
	case artistLower == candidateArtist:
		total += artistExactBonus
	case strings.Contains(candidateArtist, artistLower):
		total += artistPartialBonus
	default:
		return 0, false
	}

	switch {
	case titleLower == candidateTitle:
		total += titleExactBonus
	case strings.Contains(candidateTitle, titleLower):
		total += titlePartialBonus
	case wordOverlap(titleLower, candidateTitle):
		total += titleFuzzyBonus
	}

	for _, vp := range versionPenalties {
		if strings.Contains(candidateTitle, vp.marker) {
			total -= vp.penalty
		}
	}

	if candidate.Popularity > 0 {
		total += math.Min(candidate.Popularity/5, popularityBonusCap)
	}

	if candidate.CollectionName != "" {
		if strings.Contains(strings.ToLower(candidate.CollectionName), titleLower) {
			total += collectionHitBonus
		} else {
			total += collectionAnyBonus
		}
	}

	return total, true
}

// wordOverlap reports whether the candidate title shares at least half of
// the query title's distinct words.
func wordOverlap(query, candidate string) bool {
	queryWords := map[string]struct{}{}
	for _, w := range strings.Fields(query) {
		queryWords[w] = struct{}{}
	}
	if len(queryWords) == 0 {
		return false
	}

	candidateWords := map[string]struct{}{}
	for _, w := range strings.Fields(candidate) {
		candidateWords[w] = struct{}{}
	}

	common := 0
	for w := range queryWords {
		if _, ok := candidateWords[w]; ok {
			common++
		}
	}
	return float64(common) >= float64(len(queryWords))*fuzzyOverlapPortion
}

// rank returns the highest-scoring candidate. Ties keep the earliest
// candidate in result order.
func rank(title, artist string, results []ports.SongResult) (ports.SongResult, float64, bool) {
	var (
		best      ports.SongResult
		bestScore float64
		found     bool
	)
	for _, candidate := range results {
		s, ok := score(title, artist, candidate)
		if !ok {
			continue
		}
		if !found || s > bestScore {
			best, bestScore, found = candidate, s, true
		}
	}
	return best, bestScore, found
}
