// Package dedup cleans the song catalog: exact duplicate removal, fuzzy
// near-duplicate grouping and a deterministic keep/remove heuristic.
package dedup

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/normalize"
)

// Config carries the deduplicator's tunables. The defaults come from the
// original curation workflow and are not known to be optimal.
type Config struct {
	// ArtistSimilarity is the ratio above which two normalized artist
	// strings are treated as the same performer.
	ArtistSimilarity float64
	// MinTitleLength excludes normalized titles at or below this length
	// from near-duplicate grouping; very short titles are too ambiguous.
	MinTitleLength int
	// YearGap is the release-year spread beyond which the earlier entry is
	// presumed the original and kept.
	YearGap int
}

// DefaultConfig returns the deduplicator defaults.
func DefaultConfig() Config {
	return Config{
		ArtistSimilarity: 0.6,
		MinTitleLength:   3,
		YearGap:          5,
	}
}

// Pair is a detected near-duplicate: two songs grouped by normalized title
// with similar artist credits.
type Pair struct {
	A, B             domain.Song
	NormalizedTitle  string
	ArtistSimilarity float64
}

// Report summarizes one cleaning pass.
type Report struct {
	Input        int
	ExactRemoved int
	PairsFound   int
	NearRemoved  int
	ManualReview []Pair
	Output       int
}

// Cleaner applies the two-stage deduplication.
type Cleaner struct {
	cfg Config
}

// New constructs a Cleaner. Zero config fields fall back to defaults.
func New(cfg Config) *Cleaner {
	def := DefaultConfig()
	if cfg.ArtistSimilarity <= 0 {
		cfg.ArtistSimilarity = def.ArtistSimilarity
	}
	if cfg.MinTitleLength <= 0 {
		cfg.MinTitleLength = def.MinTitleLength
	}
	if cfg.YearGap <= 0 {
		cfg.YearGap = def.YearGap
	}
	return &Cleaner{cfg: cfg}
}

// removalKey identifies a song for removal marking. Value identity is
// deliberate: marks accumulate as a set across all pairs and a marked song
// is never un-removed by a later pair.
type removalKey struct {
	title  string
	artist string
	year   int
}

func keyOf(s domain.Song) removalKey {
	return removalKey{title: s.Title, artist: s.Artist, year: s.Year}
}

// Clean removes exact duplicates, then detects and resolves near
// duplicates. The returned catalog preserves input order; the report
// carries the diagnostic counts.
func (c *Cleaner) Clean(songs []domain.Song) ([]domain.Song, Report) {
	report := Report{Input: len(songs)}

	unique := removeExact(songs)
	report.ExactRemoved = len(songs) - len(unique)

	pairs := c.findNearDuplicates(unique)
	report.PairsFound = len(pairs)

	remove := map[removalKey]struct{}{}
	for _, pair := range pairs {
		victim, decided := c.resolve(pair)
		if !decided {
			report.ManualReview = append(report.ManualReview, pair)
			continue
		}
		remove[keyOf(victim)] = struct{}{}
	}

	cleaned := make([]domain.Song, 0, len(unique))
	for _, song := range unique {
		if _, drop := remove[keyOf(song)]; drop {
			continue
		}
		cleaned = append(cleaned, song)
	}
	report.NearRemoved = len(unique) - len(cleaned)
	report.Output = len(cleaned)

	return cleaned, report
}

// removeExact collapses entries sharing a case-insensitive title/artist
// key, keeping the first occurrence in input order.
func removeExact(songs []domain.Song) []domain.Song {
	seen := map[string]struct{}{}
	out := make([]domain.Song, 0, len(songs))
	for _, song := range songs {
		key := song.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, song)
	}
	return out
}

// findNearDuplicates groups songs by normalized title and pairs up entries
// whose normalized artists are similar or contained in one another.
func (c *Cleaner) findNearDuplicates(songs []domain.Song) []Pair {
	groups := map[string][]domain.Song{}
	var order []string
	for _, song := range songs {
		title := normalize.Title(song.Title)
		if utf8.RuneCountInString(title) <= c.cfg.MinTitleLength {
			continue
		}
		if _, ok := groups[title]; !ok {
			order = append(order, title)
		}
		groups[title] = append(groups[title], song)
	}

	var pairs []Pair
	for _, title := range order {
		group := groups[title]
		for i := 0; i < len(group); i++ {
			first := normalize.Artist(group[i].Artist)
			for j := i + 1; j < len(group); j++ {
				second := normalize.Artist(group[j].Artist)
				sim := similarity(first, second)
				if sim > c.cfg.ArtistSimilarity || strings.Contains(first, second) || strings.Contains(second, first) {
					pairs = append(pairs, Pair{
						A:                group[i],
						B:                group[j],
						NormalizedTitle:  title,
						ArtistSimilarity: sim,
					})
				}
			}
		}
	}
	return pairs
}

// resolve decides which member of a pair to remove. First matching rule
// wins; an undecided pair goes to manual review and removes neither.
func (c *Cleaner) resolve(pair Pair) (domain.Song, bool) {
	gap := pair.A.Year - pair.B.Year
	if gap < 0 {
		gap = -gap
	}
	if gap > c.cfg.YearGap {
		// The earlier release is presumed the original.
		if pair.A.Year < pair.B.Year {
			return pair.B, true
		}
		return pair.A, true
	}

	aRemix := strings.Contains(strings.ToLower(pair.A.Title), "remix")
	bRemix := strings.Contains(strings.ToLower(pair.B.Title), "remix")
	if aRemix && !bRemix {
		return pair.A, true
	}
	if bRemix && !aRemix {
		return pair.B, true
	}

	return domain.Song{}, false
}

func similarity(a, b string) float64 {
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(sim)
}
