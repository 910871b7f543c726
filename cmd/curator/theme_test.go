package main

import (
	"strings"
	"testing"

	"github.com/yearworm/backend/internal/core/domain"
)

func TestSuggestTheme(t *testing.T) {
	tests := []struct {
		name  string
		songs []domain.Song
		want  string
	}{
		{
			name: "dominant decade",
			songs: []domain.Song{
				{Title: "A", Year: 1981},
				{Title: "B", Year: 1983},
				{Title: "C", Year: 1989},
				{Title: "D", Year: 1975},
			},
			want: "Music from the 1980s",
		},
		{
			name: "shared title words",
			songs: []domain.Song{
				{Title: "Dancing Queen", Year: 1976},
				{Title: "Dancing in the Dark", Year: 1984},
				{Title: "Smooth Operator", Year: 1994},
			},
			want: "titles share: dancing",
		},
		{
			name: "no theme",
			songs: []domain.Song{
				{Title: "Imagine", Year: 1971},
				{Title: "Thriller", Year: 1982},
				{Title: "Wonderwall", Year: 1995},
			},
			want: "quite diverse",
		},
		{
			name:  "too few songs",
			songs: []domain.Song{{Title: "Imagine", Year: 1971}},
			want:  "not enough songs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestTheme(tt.songs)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("theme: got %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestNextUnaccountedDate(t *testing.T) {
	schedule := domain.Schedule{
		"2024-03-01": nil,
		"2024-03-05": nil,
		"2024-03-02": nil,
	}
	if got := nextUnaccountedDate(schedule); got != "2024-03-06" {
		t.Fatalf("next date: got %q, want 2024-03-06", got)
	}
}

func TestPickUnusedAvoidsScheduledSongs(t *testing.T) {
	songs := []domain.Song{
		{Title: "A", Artist: "X", Year: 1970},
		{Title: "B", Artist: "X", Year: 1971},
		{Title: "C", Artist: "X", Year: 1972},
		{Title: "D", Artist: "X", Year: 1973},
	}
	schedule := domain.Schedule{
		"2024-03-01": {songs[0], songs[1]},
	}

	picks, err := pickUnused(songs, schedule, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pick := range picks {
		if pick.Title == "A" || pick.Title == "B" {
			t.Fatalf("scheduled song picked again: %+v", pick)
		}
	}
}

func TestPickUnusedFallbackSkipsExcluded(t *testing.T) {
	songs := []domain.Song{
		{Title: "A", Artist: "X", Year: 1970},
		{Title: "B", Artist: "X", Year: 1971},
		{Title: "C", Artist: "X", Year: 1972},
	}
	// Every song is scheduled already, so the fallback pool kicks in. The
	// excluded song must still not come back.
	schedule := domain.Schedule{"2024-03-01": songs}

	picks, err := pickUnused(songs, schedule, songs[:1], 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pick := range picks {
		if pick.Title == "A" {
			t.Fatalf("excluded song drawn again: %+v", pick)
		}
	}
}

func TestPickUnusedInsufficientCatalog(t *testing.T) {
	songs := []domain.Song{{Title: "A", Artist: "X", Year: 1970}}

	if _, err := pickUnused(songs, domain.Schedule{}, nil, 5); err == nil {
		t.Fatal("expected an error for a too-small catalog")
	}
}

func TestPickByIndex(t *testing.T) {
	songs := []domain.Song{
		{Title: "A", Artist: "X", Year: 1970},
		{Title: "B", Artist: "X", Year: 1971},
	}

	picks, err := pickByIndex(songs, []int{2, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picks) != 2 || picks[0].Title != "B" || picks[1].Title != "A" {
		t.Fatalf("picks: %+v", picks)
	}

	if _, err := pickByIndex(songs, []int{3}); err == nil {
		t.Fatal("expected an out-of-range error")
	}
	if _, err := pickByIndex(songs, []int{1, 1, 1, 1, 1, 1}); err == nil {
		t.Fatal("expected a too-many-picks error")
	}
}
