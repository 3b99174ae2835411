// Package core defines the shared language of docfinder.
//
// This package contains:
//   - The canonical provider record (Doctor) and its attribute set
//   - Per-attribute defaults used during reconciliation
//   - The Store contract implemented by internal/store
//
// pkg/core imports only the standard library. All other packages depend on
// core, not the reverse.
package core
