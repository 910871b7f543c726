package main

import (
	"fmt"
	"sort"

	"github.com/yearworm/backend/internal/core/domain"
	"github.com/yearworm/backend/internal/dedup"
)

// printAnalytics summarizes the catalog so the curator can spot gaps,
// like a decade with too few songs to ever theme a day around.
func printAnalytics(songs []domain.Song) {
	if len(songs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("decades:")
	decades := dedup.DecadeDistribution(songs)
	keys := make([]int, 0, len(decades))
	for decade := range decades {
		keys = append(keys, decade)
	}
	sort.Ints(keys)
	for _, decade := range keys {
		fmt.Printf("  %ds: %d\n", decade, decades[decade])
	}

	fmt.Println("top artists:")
	for _, entry := range dedup.TopArtists(songs, 5) {
		fmt.Printf("  %s: %d\n", entry.Artist, entry.Count)
	}
}
