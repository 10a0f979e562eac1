package main

import (
	"os"

	"github.com/vinforge/forgedfate/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
