package main

import (
	"os"

	"github.com/flakeconf/flakeconf/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
