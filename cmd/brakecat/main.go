// Package main is the entry point for the brakecat import CLI.
package main

import (
	"os"

	"github.com/autoparts-eu/brakecat/cmd/brakecat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
