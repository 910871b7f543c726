package main

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yearworm/backend/internal/adapters/catalog"
	"github.com/yearworm/backend/internal/core/domain"
)

func cmdCurate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Build a curated five-song set for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			date, _ := cmd.Flags().GetString("date")
			force, _ := cmd.Flags().GetBool("force")

			store, err := catalog.New(dataDir)
			if err != nil {
				return err
			}
			schedule, err := store.Schedule()
			if err != nil {
				return err
			}

			if date == "" {
				date = nextUnaccountedDate(schedule)
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			if existing, ok := schedule[date]; ok && !force {
				return fmt.Errorf("%s already has %d songs curated, pass --force to replace", date, len(existing))
			}

			songs, err := store.Songs()
			if err != nil {
				return err
			}

			indices, _ := cmd.Flags().GetIntSlice("pick")
			picks, err := pickByIndex(songs, indices)
			if err != nil {
				return err
			}
			if len(picks) < domain.DailyRounds {
				fill, err := pickUnused(songs, schedule, picks, domain.DailyRounds-len(picks))
				if err != nil {
					return err
				}
				picks = append(picks, fill...)
			}

			if err := store.SetScheduleDay(date, picks); err != nil {
				return err
			}

			color.Green("curated %s:", date)
			for i, song := range picks {
				fmt.Printf("  %d. %s by %s (%d)\n", i+1, song.Title, song.Artist, song.Year)
			}
			fmt.Printf("theme: %s\n", suggestTheme(picks))
			return nil
		},
	}
	cmd.Flags().String("date", "", "Date to curate (default: day after the latest curated date)")
	cmd.Flags().IntSlice("pick", nil, "1-based catalog indices to include, remaining slots filled randomly")
	cmd.Flags().BoolP("force", "f", false, "Replace an already curated date")
	return cmd
}

// pickByIndex resolves 1-based catalog indices, as printed by `curator
// dedupe` output order.
func pickByIndex(songs []domain.Song, indices []int) ([]domain.Song, error) {
	if len(indices) > domain.DailyRounds {
		return nil, fmt.Errorf("at most %d songs per day, got %d picks", domain.DailyRounds, len(indices))
	}
	picks := make([]domain.Song, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(songs) {
			return nil, fmt.Errorf("pick %d out of range, catalog holds %d songs", idx, len(songs))
		}
		picks = append(picks, songs[idx-1])
	}
	return picks, nil
}

// nextUnaccountedDate returns the day after the latest curated date, or
// today when nothing is curated yet.
func nextUnaccountedDate(schedule domain.Schedule) string {
	var latest time.Time
	for date := range schedule {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		if parsed.After(latest) {
			latest = parsed
		}
	}
	if latest.IsZero() {
		return time.Now().Format("2006-01-02")
	}
	return latest.AddDate(0, 0, 1).Format("2006-01-02")
}

// pickUnused samples count songs that no curated day uses yet. Songs
// already scheduled only come back into rotation once everything else is
// exhausted.
func pickUnused(songs []domain.Song, schedule domain.Schedule, exclude []domain.Song, count int) ([]domain.Song, error) {
	excluded := map[string]struct{}{}
	for _, song := range exclude {
		excluded[song.Key()] = struct{}{}
	}
	used := map[string]struct{}{}
	for _, day := range schedule {
		for _, song := range day {
			used[song.Key()] = struct{}{}
		}
	}

	// Excluded songs are already in the day being built and stay out even
	// when scheduled ones come back into rotation.
	var unused, available []domain.Song
	for _, song := range songs {
		if _, out := excluded[song.Key()]; out {
			continue
		}
		available = append(available, song)
		if _, taken := used[song.Key()]; !taken {
			unused = append(unused, song)
		}
	}
	if len(unused) < count {
		if len(available) < count {
			return nil, fmt.Errorf("catalog holds %d pickable songs, need %d: %w", len(available), count, domain.ErrInsufficientCatalog)
		}
		color.Yellow("only %d unused songs left, reusing scheduled ones", len(unused))
		unused = available
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	picks := make([]domain.Song, 0, count)
	for _, idx := range rng.Perm(len(unused))[:count] {
		picks = append(picks, unused[idx])
	}
	return picks, nil
}

func cmdSchedule() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "List all curated days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")

			store, err := catalog.New(dataDir)
			if err != nil {
				return err
			}
			schedule, err := store.Schedule()
			if err != nil {
				return err
			}
			if len(schedule) == 0 {
				fmt.Println("no curated days yet")
				return nil
			}

			dates := make([]string, 0, len(schedule))
			for date := range schedule {
				dates = append(dates, date)
			}
			sort.Strings(dates)
			for _, date := range dates {
				songs := schedule[date]
				fmt.Printf("%s (%d songs, theme: %s):\n", date, len(songs), suggestTheme(songs))
				for i, song := range songs {
					fmt.Printf("  %d. %s by %s (%d)\n", i+1, song.Title, song.Artist, song.Year)
				}
			}
			return nil
		},
	}
}
