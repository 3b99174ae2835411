package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/docfinder/docfinder/pkg/core"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register("duckdb", func(ctx context.Context, path string, logger *slog.Logger) (core.Store, error) {
		s := NewDuckDBStore(logger)
		if err := s.Open(ctx, path); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// DuckDBStore keeps the doctors relation in a DuckDB database.
type DuckDBStore struct {
	sqlStore
	path string
}

// NewDuckDBStore creates a new DuckDB store instance.
func NewDuckDBStore(logger *slog.Logger) *DuckDBStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DuckDBStore{
		sqlStore: sqlStore{
			logger: logger,
			swapSQL: []string{
				"CREATE OR REPLACE TABLE " + core.DoctorsRelation + " AS SELECT * FROM " + stagingRelation,
				"DROP TABLE " + stagingRelation,
			},
		},
	}
}

// Open establishes a connection to DuckDB.
// Use ":memory:" (or an empty path) for an in-memory database.
func (s *DuckDBStore) Open(ctx context.Context, path string) error {
	if path == ":memory:" {
		path = ""
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened duckdb store", "path", path)
	return nil
}
