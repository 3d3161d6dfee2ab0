package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canvaslab/placetrace/internal/utils"
	"github.com/canvaslab/placetrace/pkg/reconstruct"
	"github.com/canvaslab/placetrace/pkg/search"
	"github.com/canvaslab/placetrace/pkg/settings"
)

// huntCmd runs the full pipeline: candidate scan, selection, tile
// reconstruction.
var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Find candidate authors in your search areas and reconstruct the selected author's tiles",
	Long: `Scans the canvas history for authors active in every configured search area,
prompts for a selection when several remain, then replays the log to list the
author's tiles that survived to the whiteout and to the end of the log.`,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := buildSettings(cmd)
		if err != nil {
			utils.Log.Fatal(err)
		}

		user := st.User
		if user == "" {
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

			user, err = resolveCandidate(candidates)
			if err != nil {
				utils.Log.Fatal(err)
			}
		}

		runReconstruction(user, st)
	},
}

// resolveCandidate returns the single remaining candidate, or prompts
// for a zero-based index when several remain.
func resolveCandidate(candidates []string) (string, error) {
	user, err := search.Resolve(candidates)
	if err == nil || !errors.Is(err, search.ErrAmbiguous) {
		return user, err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Select user by giving index: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		index, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			fmt.Println("Give zero based index of user you want to select")
			continue
		}
		user, err := search.Select(candidates, index)
		if err != nil {
			fmt.Println("Index out of bounds")
			continue
		}
		return user, nil
	}
}

func runReconstruction(user string, st *settings.Settings) {
	engine := &reconstruct.Engine{
		User:       user,
		Checkpoint: st.Checkpoint,
		Log:        utils.Log,
	}
	res, err := engine.Run(st.LogPath, st.Era)
	if err != nil {
		utils.Log.Fatal(err)
	}
	printResult(user, res)
}

func printResult(user string, res *reconstruct.Result) {
	fmt.Printf("Total placements by %s: %d\n", user, res.Placements)

	if len(res.Checkpoint) == 0 {
		fmt.Println("No tiles remaining before the whiteout")
	}
	for tile, color := range res.Checkpoint {
		fmt.Printf("Remaining %s tile before whiteout: %d,%d\n", color, tile.X, tile.Y)
	}

	if len(res.Final) == 0 {
		fmt.Println("No tiles remaining at end of log")
	}
	for tile, ts := range res.Final {
		fmt.Printf("Remaining tile at end of log: %d,%d (last placed %s)\n", tile.X, tile.Y, ts)
	}
}

func init() {
	rootCmd.AddCommand(huntCmd)
	huntCmd.Flags().StringP("user", "u", "", "Target author id (skips the candidate search)")
	huntCmd.Flags().StringP("areas", "a", "", "JSON file with search area definitions")
	huntCmd.Flags().BoolP("restrict", "r", true, "Drop authors with any activity outside every search area")
	huntCmd.Flags().IntP("checkpoint", "", 0, "Whiteout line number (defaults to the era constant)")
	huntCmd.Flags().IntP("workers", "", 0, "Scan worker count (defaults to twice the CPU count)")
}
