package core

import (
	"context"
	"time"
)

// DoctorsRelation is the fixed name of the persisted relation.
const DoctorsRelation = "doctors"

// Store persists the doctors relation.
type Store interface {
	// ReplaceDoctors swaps the doctors relation for the given rows in a single
	// atomic step and records the load run alongside it.
	ReplaceDoctors(ctx context.Context, doctors []Doctor, run *LoadRun) error

	// Doctors reads the doctors relation back in insertion order.
	Doctors(ctx context.Context) ([]Doctor, error)

	// Close releases the underlying connection.
	Close() error
}

// LoadRun describes one persisted loader run.
type LoadRun struct {
	ID          string
	StartedAt   time.Time
	CompletedAt time.Time
	Sources     int
	Skipped     int
	Rows        int
}
