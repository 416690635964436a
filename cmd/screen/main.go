// Package main implements the screen CLI, which ranks PDF résumés against a
// job description from the terminal.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
