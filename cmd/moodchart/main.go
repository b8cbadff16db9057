package main

import (
	"os"

	"moodchart/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
