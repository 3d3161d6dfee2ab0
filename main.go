package main

import (
	"github.com/canvaslab/placetrace/cmd"
)

func main() {
	cmd.Execute()
}
