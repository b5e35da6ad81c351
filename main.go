package main

import (
	"os"

	"github.com/kvega/kayfabe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
