// Package loader reconciles heterogeneous doctor CSV files onto the canonical
// schema and replaces the doctors relation with the result.
//
// A run has three stages: discovery of source files, per-source schema
// reconciliation, and aggregation followed by persistence. A source that
// fails to parse is skipped; it never aborts the run.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/docfinder/docfinder/internal/store"
	"github.com/docfinder/docfinder/pkg/core"
)

// Config holds loader configuration.
type Config struct {
	// InputDir is the directory scanned for source files
	InputDir string
	// Pattern filters source file names (defaults to DefaultPattern)
	Pattern string
	// Database is the destination path of the doctors relation
	Database string
	// StoreType selects the store backend (defaults to "sqlite")
	StoreType string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// OpenStore opens the destination (optional, defaults to store.Open)
	OpenStore func(ctx context.Context, cfg store.Config) (core.Store, error)
}

// Loader runs the reconcile-and-load pipeline.
type Loader struct {
	inputDir  string
	pattern   string
	database  string
	storeType string
	logger    *slog.Logger
	openStore func(ctx context.Context, cfg store.Config) (core.Store, error)
}

// SourceReport records the outcome for one discovered source.
type SourceReport struct {
	Path string
	Rows int
	Err  error
}

// Result is the outcome of a run. It is returned even when persistence
// fails so callers can tell "produced but not saved" from "nothing produced".
type Result struct {
	RunID   string
	Sources []SourceReport
	Doctors []core.Doctor
	Summary Summary
	Saved   bool
}

// Skipped returns the number of sources that failed to parse.
func (r *Result) Skipped() int {
	n := 0
	for _, s := range r.Sources {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// New creates a loader.
func New(cfg Config) *Loader {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	storeType := cfg.StoreType
	if storeType == "" {
		storeType = store.DefaultType
	}
	openStore := cfg.OpenStore
	if openStore == nil {
		openStore = store.Open
	}

	return &Loader{
		inputDir:  cfg.InputDir,
		pattern:   pattern,
		database:  cfg.Database,
		storeType: storeType,
		logger:    logger,
		openStore: openStore,
	}
}

// Run discovers, reconciles, aggregates and persists. It returns
// ErrNoValidData when no source could be reconciled and a *PersistenceError
// when the destination could not be written.
func (l *Loader) Run(ctx context.Context) (*Result, error) {
	started := time.Now().UTC()

	l.logger.Debug("discovering sources", "input_dir", l.inputDir, "pattern", l.pattern)
	files, err := Discover(l.inputDir, l.pattern)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	tables := make([]*Table, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		l.logger.Debug("loading source file", "path", path)
		src, err := ReadSource(path)
		if err != nil {
			l.logger.Warn("skipping source", "path", path, "error", err)
			result.Sources = append(result.Sources, SourceReport{Path: path, Err: err})
			continue
		}

		table := Reconcile(src)
		l.logger.Debug("reconciled source", "path", path, "rows", len(table.Records), "columns", table.Columns)
		result.Sources = append(result.Sources, SourceReport{Path: path, Rows: len(table.Records)})
		tables = append(tables, table)
	}

	if len(tables) == 0 {
		l.logger.Info("no valid doctor data found", "input_dir", l.inputDir, "sources", len(files))
		return result, ErrNoValidData
	}

	result.Doctors = Aggregate(tables)
	result.Summary = Summarize(result.Doctors)

	run := &core.LoadRun{
		ID:        uuid.New().String(),
		StartedAt: started,
		Sources:   len(files),
		Skipped:   result.Skipped(),
		Rows:      len(result.Doctors),
	}
	if err := l.persist(ctx, result.Doctors, run); err != nil {
		l.logger.Error("failed to save doctors", "database", l.database, "error", err)
		return result, err
	}

	result.RunID = run.ID
	result.Saved = true
	l.logger.Info("saved doctors", "database", l.database, "rows", len(result.Doctors), "run_id", run.ID)
	return result, nil
}

// persist replaces the doctors relation at the destination.
func (l *Loader) persist(ctx context.Context, doctors []core.Doctor, run *core.LoadRun) error {
	if dir := filepath.Dir(l.database); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &PersistenceError{Path: dir, Op: "create directory", Err: err}
		}
	}

	st, err := l.openStore(ctx, store.Config{Type: l.storeType, Path: l.database, Logger: l.logger})
	if err != nil {
		return &PersistenceError{Path: l.database, Op: "open", Err: err}
	}
	// Close runs after the commit; a failure there is logged, not returned.
	defer func() {
		if cerr := st.Close(); cerr != nil {
			l.logger.Warn("failed to close store", "database", l.database, "error", cerr)
		}
	}()

	run.CompletedAt = time.Now().UTC()
	if err := st.ReplaceDoctors(ctx, doctors, run); err != nil {
		return &PersistenceError{Path: l.database, Op: "replace " + core.DoctorsRelation + " in", Err: err}
	}
	return nil
}

// IsNoValidData reports whether err is the informational "no valid data"
// outcome rather than a failure.
func IsNoValidData(err error) bool {
	return errors.Is(err, ErrNoValidData)
}

// String renders a one-line description of a source outcome.
func (s SourceReport) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s: skipped (%v)", filepath.Base(s.Path), s.Err)
	}
	return fmt.Sprintf("%s: %d rows", filepath.Base(s.Path), s.Rows)
}
