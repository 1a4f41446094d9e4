package main

import (
	"os"

	"github.com/contalivre/contalivre/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
