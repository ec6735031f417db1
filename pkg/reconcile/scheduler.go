package reconcile

import (
	"context"
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/depsync/pkg/constraint"
	"github.com/ajxudir/depsync/pkg/registry"
	"github.com/ajxudir/depsync/pkg/verbose"
)

// VersionFetcher resolves a package name to its latest published version.
// *registry.Client is the production implementation.
type VersionFetcher interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

// Reconciler drives concurrent latest-version lookups for dependency groups.
//
// The zero Concurrency means unbounded fan-out: one goroutine per entry,
// throttled only by the shared client's connection pool. A positive value
// caps the number of in-flight lookups.
//
// Fields:
//   - Fetcher: The shared version fetcher, safe for concurrent use
//   - Concurrency: Maximum simultaneous lookups; 0 or negative for unbounded
//   - OnLookup: Optional hook invoked once per completed lookup (success or
//     failure), used for progress reporting; must be safe for concurrent calls
type Reconciler struct {
	Fetcher     VersionFetcher
	Concurrency int
	OnLookup    func()
}

// entryOutcome is the per-package result slot filled by one worker.
// At most one of decision/warning is set; both nil means "up to date".
type entryOutcome struct {
	decision *Decision
	warning  *Warning
}

// Reconcile compares every entry of a dependency group against the registry.
//
// It performs the following operations:
//   - Step 1: Snapshots the group's entries in insertion order
//   - Step 2: Fans out one lookup task per entry, each parsing the declared
//     constraint and fetching the latest version
//   - Step 3: Collects results into an indexed slice, so output order always
//     matches input order regardless of completion order
//
// Each task is an independent unit of work: a failed lookup contributes a
// warning and never cancels, blocks, or corrupts any other task. Update
// detection is plain string inequality between the fetched version and the
// declared base version; no semver ordering is applied, so a locally-ahead
// version is still reported against an older registry version. Cancellation
// of ctx surfaces per package as a timeout-class warning rather than as an
// error from this method.
//
// The input mapping is never mutated.
//
// Parameters:
//   - ctx: Context for cancelling in-flight lookups
//   - deps: Ordered mapping of package name to declared constraint
//   - group: Which dependency group is being reconciled
//
// Returns:
//   - GroupResult: Decisions and warnings in input order, plus the examined count
func (r *Reconciler) Reconcile(ctx context.Context, deps *orderedmap.OrderedMap, group Group) GroupResult {
	names := deps.Keys()
	outcomes := make([]entryOutcome, len(names))

	var sem chan struct{}
	if r.Concurrency > 0 {
		sem = make(chan struct{}, r.Concurrency)
	}

	done := make(chan int)
	for i, name := range names {
		raw, _ := deps.Get(name)
		declared, _ := raw.(string)

		go func(idx int, name, declared string) {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			outcomes[idx] = r.lookupEntry(ctx, name, declared, group)
			if r.OnLookup != nil {
				r.OnLookup()
			}
			done <- idx
		}(i, name, declared)
	}

	for range names {
		<-done
	}

	result := GroupResult{Group: group, Examined: len(names)}
	for _, outcome := range outcomes {
		if outcome.decision != nil {
			result.Decisions = append(result.Decisions, *outcome.decision)
		}
		if outcome.warning != nil {
			result.Warnings = append(result.Warnings, *outcome.warning)
		}
	}

	verbose.GroupReconciled(string(group), result.Examined, len(result.Decisions), len(result.Warnings))
	return result
}

// lookupEntry runs the comparison for a single dependency entry.
//
// It performs the following operations:
//   - Step 1: Parses the declared constraint into marker and base version
//   - Step 2: Fetches the latest version through the shared fetcher
//   - Step 3: Emits a decision when latest differs textually from the base
//
// Parameters:
//   - ctx: Context for the lookup request
//   - name: The package name
//   - declared: The declared constraint string
//   - group: The dependency group the entry belongs to
//
// Returns:
//   - entryOutcome: A decision, a warning, or neither (up to date)
func (r *Reconciler) lookupEntry(ctx context.Context, name, declared string, group Group) entryOutcome {
	parsed := constraint.Parse(declared)

	latest, err := r.Fetcher.LatestVersion(ctx, name)
	if err != nil {
		if _, ok := err.(*registry.FetchError); !ok {
			err = &registry.FetchError{
				Package: name,
				Kind:    registry.FetchTransport,
				Err:     fmt.Errorf("lookup failed: %w", err),
			}
		}
		verbose.FetchFailed(name, err)
		return entryOutcome{warning: &Warning{Package: name, Err: err}}
	}

	verbose.VersionCompared(name, parsed.Base, latest)
	if latest == parsed.Base {
		return entryOutcome{}
	}

	return entryOutcome{decision: &Decision{
		Name:          name,
		OldConstraint: declared,
		NewConstraint: parsed.Apply(latest),
		Group:         group,
	}}
}
