package cmd

import (
	"fmt"
	"net/url"
	"path"

	"github.com/spf13/cobra"

	"github.com/canvaslab/placetrace/internal/utils"
	"github.com/canvaslab/placetrace/pkg/fetch"
)

// fetchCmd downloads a published canvas-history dataset. The analysis
// commands never touch the network; this is a convenience for getting
// the data in the first place.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a canvas history dataset",
	Run: func(cmd *cobra.Command, args []string) {
		rawURL, _ := cmd.Flags().GetString("url")
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			u, err := url.Parse(rawURL)
			if err != nil {
				utils.Log.Fatal("Invalid URL: ", err)
			}
			output = path.Base(u.Path)
		}

		utils.Log.Info("Downloading ", rawURL)
		n, err := fetch.Download(rawURL, output)
		if err != nil {
			utils.Log.Fatal(err)
		}
		fmt.Printf("Saved %s (%d bytes)\n", output, n)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("url", "", "", "Dataset URL")
	fetchCmd.Flags().StringP("output", "o", "", "Output file (defaults to the URL's file name)")
	fetchCmd.MarkFlagRequired("url")
}
