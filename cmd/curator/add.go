package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yearworm/backend/internal/adapters/catalog"
	"github.com/yearworm/backend/internal/core/domain"
)

const earliestYear = 1900

func cmdAdd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one song to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			title, _ := cmd.Flags().GetString("title")
			artist, _ := cmd.Flags().GetString("artist")
			year, _ := cmd.Flags().GetInt("year")

			if title == "" || artist == "" {
				return errors.New("both --title and --artist are required")
			}
			if year < earliestYear || year > time.Now().Year() {
				return fmt.Errorf("--year must be between %d and %d", earliestYear, time.Now().Year())
			}

			store, err := catalog.New(dataDir)
			if err != nil {
				return err
			}

			song := domain.Song{Title: title, Artist: artist, Year: year}
			if err := store.AppendSong(song); err != nil {
				if errors.Is(err, domain.ErrDuplicateSong) {
					color.Yellow("already in the catalog: %q by %q", title, artist)
					return nil
				}
				return err
			}

			color.Green("added %q by %q (%d)", title, artist, year)
			return nil
		},
	}
	cmd.Flags().StringP("title", "t", "", "Song title")
	cmd.Flags().StringP("artist", "a", "", "Artist credit")
	cmd.Flags().IntP("year", "y", 0, "Release year")
	return cmd
}
