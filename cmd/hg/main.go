package main

import (
	"os"

	"github.com/harvestguru/hg-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
