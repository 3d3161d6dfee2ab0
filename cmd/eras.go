package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canvaslab/placetrace/pkg/canvas"
)

// erasCmd lists the built-in dataset era descriptors.
var erasCmd = &cobra.Command{
	Use:   "eras",
	Short: "List the built-in dataset eras",
	Run: func(cmd *cobra.Command, args []string) {
		for _, e := range canvas.Eras() {
			layout := "timestamp,user,coordinate,color"
			if e.ColorBeforeShape {
				layout = "timestamp,user,color,coordinate"
			}
			width := "unsigned"
			if e.Signed {
				width = "signed"
			}
			fmt.Printf("%s: %s, %s 16-bit coordinates, whiteout at line %d\n", e.Name, layout, width, e.Whiteout)
		}
	},
}

func init() {
	rootCmd.AddCommand(erasCmd)
}
