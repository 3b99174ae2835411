// Package main provides the docfinder CLI.
package main

import (
	"os"

	"github.com/docfinder/docfinder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
