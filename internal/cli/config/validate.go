package config

import (
	"fmt"
	"slices"

	"github.com/docfinder/docfinder/internal/store"
)

// OutputFormats lists the accepted values of the output option.
var OutputFormats = []string{"text", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database is required")
	}
	if !store.IsRegistered(c.Store) {
		return fmt.Errorf("unknown store %q (available: %v)", c.Store, store.ListStores())
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (available: %v)", c.OutputFormat, OutputFormats)
	}
	return nil
}
