package main

import (
	"os"

	"github.com/uiuxradar/uiux-radar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
