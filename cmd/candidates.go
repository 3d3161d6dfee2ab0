package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canvaslab/placetrace/internal/utils"
	"github.com/canvaslab/placetrace/pkg/search"
)

// candidatesCmd runs the candidate scan only, without reconstruction.
// Useful for iterating on search area definitions.
var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List candidate authors matching the configured search areas",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := buildSettings(cmd)
		if err != nil {
			utils.Log.Fatal(err)
		}
		if len(st.Areas) == 0 {
			utils.Log.Fatal("at least one search area is required")
		}

		scanner := &search.Scanner{
			Areas:    st.Areas,
			Restrict: st.Restrict,
			Workers:  st.Workers,
			Log:      utils.Log,
		}
		candidates, err := scanner.Run(st.LogPath, st.Era)
		if err != nil {
			utils.Log.Fatal(err)
		}

		if len(candidates) == 0 {
			fmt.Println("Did not find any users.")
			return
		}
		fmt.Println("Found users:")
		for i, c := range candidates {
			fmt.Printf("%d: %s\n", i, c)
		}
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.Flags().StringP("areas", "a", "", "JSON file with search area definitions")
	candidatesCmd.Flags().BoolP("restrict", "r", true, "Drop authors with any activity outside every search area")
	candidatesCmd.Flags().IntP("checkpoint", "", 0, "Whiteout line number (defaults to the era constant)")
	candidatesCmd.Flags().IntP("workers", "", 0, "Scan worker count (defaults to twice the CPU count)")
}
