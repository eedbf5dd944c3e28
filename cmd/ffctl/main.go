// Package main is the entry point for the ffctl CLI.
package main

import (
	"os"

	"firefly-assistant/cmd/ffctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
