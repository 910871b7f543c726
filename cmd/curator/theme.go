package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yearworm/backend/internal/adapters/catalog"
	"github.com/yearworm/backend/internal/core/domain"
)

func cmdTheme() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Suggest a theme for a curated date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			date, _ := cmd.Flags().GetString("date")

			store, err := catalog.New(dataDir)
			if err != nil {
				return err
			}
			schedule, err := store.Schedule()
			if err != nil {
				return err
			}
			if len(schedule) == 0 {
				return fmt.Errorf("no curated days to analyze")
			}

			if date == "" {
				// Default to the latest curated date.
				for d := range schedule {
					if d > date {
						date = d
					}
				}
			}
			songs, ok := schedule[date]
			if !ok {
				return fmt.Errorf("no songs curated for %s", date)
			}

			fmt.Printf("%s: %s\n", date, suggestTheme(songs))
			return nil
		},
	}
	cmd.Flags().String("date", "", "Date to analyze (default: latest curated date)")
	return cmd
}

// suggestTheme guesses a display theme for a curated day. Three or more
// songs from one decade wins; failing that, a word shared between titles.
func suggestTheme(songs []domain.Song) string {
	if len(songs) < 3 {
		return "not enough songs to tell"
	}

	decades := map[int]int{}
	for _, song := range songs {
		decades[song.Year/10*10]++
	}
	bestDecade, bestCount := 0, 0
	for decade, count := range decades {
		if count > bestCount || (count == bestCount && decade < bestDecade) {
			bestDecade, bestCount = decade, count
		}
	}
	if bestCount >= 3 {
		return fmt.Sprintf("Music from the %ds", bestDecade)
	}

	words := map[string]int{}
	for _, song := range songs {
		for _, word := range strings.Fields(strings.ToLower(song.Title)) {
			if len(word) > 3 {
				words[word]++
			}
		}
	}
	var common []string
	for word, count := range words {
		if count > 1 {
			common = append(common, word)
		}
	}
	if len(common) > 0 {
		sort.Strings(common)
		return "titles share: " + strings.Join(common, ", ")
	}

	return "quite diverse, no clear theme"
}
