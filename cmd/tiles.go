package cmd

import (
	"github.com/spf13/cobra"

	"github.com/canvaslab/placetrace/internal/utils"
)

// tilesCmd reconstructs the surviving tiles of an explicitly given
// author, skipping the candidate search.
var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Reconstruct the surviving tiles of a known author",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := buildSettings(cmd)
		if err != nil {
			utils.Log.Fatal(err)
		}
		if st.User == "" {
			utils.Log.Fatal("a target author id is required (--user)")
		}
		runReconstruction(st.User, st)
	},
}

func init() {
	rootCmd.AddCommand(tilesCmd)
	tilesCmd.Flags().StringP("user", "u", "", "Target author id")
	tilesCmd.Flags().IntP("checkpoint", "", 0, "Whiteout line number (defaults to the era constant)")
}
