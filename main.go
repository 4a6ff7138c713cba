// Package main is the entry point for the fanpulse CLI.
package main

import (
	"os"

	"fan-pulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
