package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yearworm/backend/internal/adapters/catalog"
	"github.com/yearworm/backend/internal/dedup"
)

func cmdDedupe() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Find and remove duplicate catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			write, _ := cmd.Flags().GetBool("write")
			threshold, _ := cmd.Flags().GetFloat64("threshold")

			store, err := catalog.New(dataDir)
			if err != nil {
				return err
			}
			songs, err := store.Songs()
			if err != nil {
				return err
			}

			cfg := dedup.DefaultConfig()
			if threshold > 0 {
				cfg.ArtistSimilarity = threshold
			}
			cleaned, report := dedup.New(cfg).Clean(songs)

			fmt.Printf("catalog: %d songs\n", report.Input)
			if report.ExactRemoved > 0 {
				color.Red("exact duplicates removed: %d", report.ExactRemoved)
			}
			if report.NearRemoved > 0 {
				color.Red("near duplicates removed: %d (of %d pairs)", report.NearRemoved, report.PairsFound)
			}
			if report.ExactRemoved == 0 && report.NearRemoved == 0 {
				color.Green("no duplicates found")
			}
			for _, pair := range report.ManualReview {
				color.Yellow("review: %q by %q (%d) vs %q by %q (%d), artist similarity %.2f",
					pair.A.Title, pair.A.Artist, pair.A.Year,
					pair.B.Title, pair.B.Artist, pair.B.Year,
					pair.ArtistSimilarity)
			}

			printAnalytics(cleaned)

			if !write {
				if report.Output != report.Input {
					fmt.Println("dry run, pass --write to save the cleaned catalog")
				}
				return nil
			}
			if err := store.SaveSongs(cleaned); err != nil {
				return err
			}
			color.Green("saved %d songs", len(cleaned))
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Save the cleaned catalog")
	cmd.Flags().Float64("threshold", 0, "Artist similarity threshold (default 0.6)")
	return cmd
}
