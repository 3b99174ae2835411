package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/docfinder/docfinder/pkg/core"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

func init() {
	Register("sqlite", func(ctx context.Context, path string, logger *slog.Logger) (core.Store, error) {
		s := NewSQLiteStore(logger)
		if err := s.Open(ctx, path); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// SQLiteStore keeps the doctors relation in a SQLite file.
type SQLiteStore struct {
	sqlStore
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{
		sqlStore: sqlStore{
			logger: logger,
			swapSQL: []string{
				"DROP TABLE IF EXISTS " + core.DoctorsRelation,
				"ALTER TABLE " + stagingRelation + " RENAME TO " + core.DoctorsRelation,
			},
		},
	}
}

// Open opens a connection to the SQLite database, creating the file if needed.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened sqlite store", "path", path)
	return nil
}
