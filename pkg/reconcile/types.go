// Package reconcile contains the version-reconciliation engine: it fans a
// dependency mapping out into concurrent registry lookups, isolates
// per-package failures, and produces a deterministic, ordered set of update
// decisions that callers can render or apply back onto the manifest.
package reconcile

import (
	"fmt"

	"github.com/ajxudir/depsync/pkg/registry"
)

// Group identifies which manifest dependency mapping an entry belongs to.
type Group string

const (
	// Runtime is the "dependencies" mapping.
	Runtime Group = "runtime"
	// Development is the "devDependencies" mapping.
	Development Group = "development"
)

// Decision records that a package's declared constraint should move to the
// registry's latest version, keeping the original range marker.
//
// A Decision exists only when the fetched latest version differs textually
// from the declared base version. It is immutable once produced.
//
// Fields:
//   - Name: The package name
//   - OldConstraint: The declared constraint as written in the manifest
//   - NewConstraint: The marker-preserving replacement (prefix + latest)
//   - Group: Which dependency mapping the package came from
type Decision struct {
	Name          string `json:"name"`
	OldConstraint string `json:"from"`
	NewConstraint string `json:"to"`
	Group         Group  `json:"group"`
}

// Warning records a per-package lookup failure that did not abort the batch.
//
// Fields:
//   - Package: The package whose lookup failed
//   - Err: The failure, typically a *registry.FetchError
type Warning struct {
	Package string
	Err     error
}

// String formats the warning for user-facing output.
//
// Returns:
//   - string: Message in the form "failed to fetch <package>: <cause>"
func (w Warning) String() string {
	return fmt.Sprintf("failed to fetch %s: %v", w.Package, w.Err)
}

// Reason returns the fetch failure classification when available.
//
// Returns:
//   - string: The FetchErrorKind as a string, or "error" for untyped failures
func (w Warning) Reason() string {
	if fe, ok := w.Err.(*registry.FetchError); ok {
		return string(fe.Kind)
	}
	return "error"
}

// GroupResult is the outcome of reconciling one dependency group.
//
// Decisions are ordered by the input mapping's insertion order, so a rerun
// against an unchanged manifest yields identical output. Warnings follow the
// same ordering discipline.
//
// Fields:
//   - Group: The group that was reconciled
//   - Decisions: One entry per package whose latest version differs
//   - Warnings: One entry per package whose lookup failed
//   - Examined: Total number of packages in the group
type GroupResult struct {
	Group     Group
	Decisions []Decision
	Warnings  []Warning
	Examined  int
}
