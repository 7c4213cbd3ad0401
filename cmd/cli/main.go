// Package main is the entry point for the dmc-quote CLI.
package main

import (
	"os"

	"dmc-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
