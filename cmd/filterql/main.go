package main

import (
	"os"

	"github.com/kolsrud/filterql/cmd/filterql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
