package catalog

import "github.com/yearworm/backend/internal/core/domain"

// starterSongs seeds a brand-new data directory so the game is playable
// before an operator imports a real catalog.
func starterSongs() []domain.Song {
	return []domain.Song{
		{Title: "Bohemian Rhapsody", Artist: "Queen", Year: 1975},
		{Title: "Billie Jean", Artist: "Michael Jackson", Year: 1983},
		{Title: "Smells Like Teen Spirit", Artist: "Nirvana", Year: 1991},
		{Title: "Rolling in the Deep", Artist: "Adele", Year: 2011},
		{Title: "Hey Jude", Artist: "The Beatles", Year: 1968},
		{Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Year: 1987},
		{Title: "Don't Stop Believin'", Artist: "Journey", Year: 1981},
		{Title: "Hotel California", Artist: "Eagles", Year: 1976},
		{Title: "Imagine", Artist: "John Lennon", Year: 1971},
		{Title: "Thriller", Artist: "Michael Jackson", Year: 1982},
	}
}
