// Package main is the entry point for the mapiker CLI.
package main

import (
	"os"

	"mapiker/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
