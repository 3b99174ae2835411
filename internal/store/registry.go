// Package store persists the doctors relation.
//
// Backends register themselves by name; Open picks one from Config.Type.
// Every backend replaces the relation inside a single transaction so a
// failed write leaves the previous contents in place.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/docfinder/docfinder/pkg/core"
)

// DefaultType is the backend used when Config.Type is empty.
const DefaultType = "sqlite"

// Config selects and configures a store backend.
type Config struct {
	Type   string
	Path   string
	Logger *slog.Logger
}

// Opener opens a backend at path.
type Opener func(ctx context.Context, path string, logger *slog.Logger) (core.Store, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Opener)
)

// Register adds a backend to the registry.
// Called by backends in their init() functions.
func Register(name string, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = open
}

// Open opens the backend named by cfg.Type.
func Open(ctx context.Context, cfg Config) (core.Store, error) {
	typ := cfg.Type
	if typ == "" {
		typ = DefaultType
	}

	registryMu.RLock()
	open, ok := registry[typ]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownStoreError{Type: typ, Available: ListStores()}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return open(ctx, cfg.Path, logger)
}

// ListStores returns all registered backend names (sorted).
func ListStores() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownStoreError is returned when an unknown backend is requested.
type UnknownStoreError struct {
	Type      string
	Available []string
}

func (e *UnknownStoreError) Error() string {
	return fmt.Sprintf("unknown store type %q (available: %v)", e.Type, e.Available)
}
