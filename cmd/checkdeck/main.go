// Package main provides the CheckDeck CLI entrypoint.
package main

import (
	"os"

	"github.com/checkdeck-io/checkdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
