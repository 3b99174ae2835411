package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/docfinder/docfinder/pkg/core"
)

const stagingRelation = core.DoctorsRelation + "__staging"

const createStagingSQL = `CREATE TABLE ` + stagingRelation + ` (
	name TEXT NOT NULL,
	specialization TEXT NOT NULL,
	hospital TEXT NOT NULL,
	district TEXT NOT NULL,
	phone TEXT NOT NULL,
	experience TEXT NOT NULL,
	rating DOUBLE NOT NULL,
	languages TEXT NOT NULL
)`

const insertStagingSQL = `INSERT INTO ` + stagingRelation + `
	(name, specialization, hospital, district, phone, experience, rating, languages)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const createLoadRunsSQL = `CREATE TABLE IF NOT EXISTS load_runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	source_count INTEGER NOT NULL,
	skipped_count INTEGER NOT NULL,
	row_count INTEGER NOT NULL
)`

const insertLoadRunSQL = `INSERT INTO load_runs
	(id, started_at, completed_at, source_count, skipped_count, row_count)
	VALUES (?, ?, ?, ?, ?, ?)`

const selectDoctorsSQL = `SELECT name, specialization, hospital, district, phone, experience, rating, languages
	FROM ` + core.DoctorsRelation + ` ORDER BY rowid`

// sqlStore holds the transactional replace logic shared by the database/sql
// backends. swapSQL moves the staging relation over the doctors relation.
type sqlStore struct {
	db      *sql.DB
	logger  *slog.Logger
	swapSQL []string
}

// ReplaceDoctors stages the rows, swaps them in and records the run, all in
// one transaction.
func (s *sqlStore) ReplaceDoctors(ctx context.Context, doctors []core.Doctor, run *core.LoadRun) (err error) {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		createLoadRunsSQL,
		"DROP TABLE IF EXISTS " + stagingRelation,
		createStagingSQL,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare staging relation: %w", err)
		}
	}

	if err := insertDoctors(ctx, tx, doctors); err != nil {
		return err
	}

	for _, stmt := range s.swapSQL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to swap %s relation: %w", core.DoctorsRelation, err)
		}
	}

	if run != nil {
		if _, err := tx.ExecContext(ctx, insertLoadRunSQL,
			run.ID,
			run.StartedAt.Format(time.RFC3339Nano),
			run.CompletedAt.Format(time.RFC3339Nano),
			run.Sources, run.Skipped, run.Rows,
		); err != nil {
			return fmt.Errorf("failed to record load run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Debug("replaced doctors relation", "rows", len(doctors))
	return nil
}

func insertDoctors(ctx context.Context, tx *sql.Tx, doctors []core.Doctor) error {
	stmt, err := tx.PrepareContext(ctx, insertStagingSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, d := range doctors {
		languages, err := json.Marshal(d.Languages)
		if err != nil {
			return fmt.Errorf("failed to encode languages for row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx,
			d.Name, d.Specialization, d.Hospital, d.District,
			d.Phone, d.Experience, d.Rating, string(languages),
		); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return nil
}

// Doctors reads the doctors relation in insertion order.
func (s *sqlStore) Doctors(ctx context.Context) ([]core.Doctor, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, selectDoctorsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var doctors []core.Doctor
	for rows.Next() {
		var d core.Doctor
		var languages string
		if err := rows.Scan(&d.Name, &d.Specialization, &d.Hospital, &d.District,
			&d.Phone, &d.Experience, &d.Rating, &languages); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		if err := json.Unmarshal([]byte(languages), &d.Languages); err != nil {
			return nil, fmt.Errorf("failed to decode languages %q: %w", languages, err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating doctors: %w", err)
	}
	return doctors, nil
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
