// Command curator is the operator tool for the song catalog: adding
// entries, cleaning duplicates and building curated daily sets.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cmdRoot = &cobra.Command{
	Use:   "curator",
	Short: "Manage the Yearworm song catalog and daily schedule",
}

func main() {
	cmdRoot.PersistentFlags().StringP("data", "d", "data", "Path to the catalog data directory")

	cmdRoot.AddCommand(cmdAdd())
	cmdRoot.AddCommand(cmdDedupe())
	cmdRoot.AddCommand(cmdCurate())
	cmdRoot.AddCommand(cmdSchedule())
	cmdRoot.AddCommand(cmdTheme())

	if err := cmdRoot.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
