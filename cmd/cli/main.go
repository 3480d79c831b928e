// Package main is the entry point for the sodacraft CLI.
package main

import (
	"os"

	"sodacraft/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
