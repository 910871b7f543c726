// Package normalize provides the shared text cleanup used by the preview
// matcher and the catalog deduplicator.
package normalize

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	markerTokens  = regexp.MustCompile(`remix|version|remaster|edit|radio|extended|feat\.|\bft\.|\bfeaturing\b`)
	punctuation   = regexp.MustCompile(`[^\w\s]`)
	whitespace    = regexp.MustCompile(`\s+`)
	featSuffix    = regexp.MustCompile(`(?i)\bf(?:ea)?t\.`)
)

// Title reduces a song title to its comparable core: lowercased, with
// parentheticals, version markers and punctuation removed and whitespace
// collapsed.
func Title(title string) string {
	t := strings.ToLower(title)
	t = parenthetical.ReplaceAllString(t, "")
	t = markerTokens.ReplaceAllString(t, "")
	t = punctuation.ReplaceAllString(t, "")
	return collapse(t)
}

// Artist lowercases an artist credit and keeps only the primary-artist
// prefix before any featuring annotation.
func Artist(artist string) string {
	return PrimaryArtist(strings.ToLower(artist))
}

// PrimaryArtist returns the portion of an artist credit before any "ft."
// or "feat." annotation, preserving case for display and search queries.
func PrimaryArtist(artist string) string {
	if loc := featSuffix.FindStringIndex(artist); loc != nil {
		artist = artist[:loc[0]]
	}
	return collapse(artist)
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
