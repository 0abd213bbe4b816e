package main

import (
	"os"

	"github.com/Nikolay-Chillev/ghrepo/cmd"
)

func main() {
	// See cmd/root.go for Execute()
	if err := cmd.Execute(); err != nil {
		os.Exit(-1)
	}
}
