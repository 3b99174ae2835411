package loader

import (
	"errors"
	"fmt"
)

// ErrNoValidData is returned when no source could be reconciled. Nothing is
// written to the destination in that case.
var ErrNoValidData = errors.New("no valid doctor data found in source files")

// SourceParseError reports a source file that could not be read or parsed.
// The loader skips such sources and keeps going.
type SourceParseError struct {
	Path string
	Err  error
}

func (e *SourceParseError) Error() string {
	return fmt.Sprintf("failed to parse source %s: %v", e.Path, e.Err)
}

func (e *SourceParseError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failure to write the doctors relation. The
// reconciled rows are still available on the Result returned with it.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
