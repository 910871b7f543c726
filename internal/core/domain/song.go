package domain

import "strings"

// Song is one catalog entry: the guessing target of a game round.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
}

// Key returns the case-insensitive identity of a song. Two catalog entries
// sharing a key are exact duplicates.
func (s Song) Key() string {
	return strings.ToLower(s.Title) + "|" + strings.ToLower(s.Artist)
}

// Schedule maps an ISO date (YYYY-MM-DD) to the songs curated for that day.
// A day is complete once it holds exactly five songs.
type Schedule map[string][]Song

// GameResult is a finished game recorded for the stats endpoint.
type GameResult struct {
	ID    string
	Date  string // ISO day the game was played
	Mode  Mode
	Score int
}
