package reconcile

import "github.com/iancoleman/orderedmap"

// Report is the aggregated outcome of reconciling both dependency groups.
//
// Updates are ordered runtime group first, then development group, each in
// manifest insertion order. The engine holds no state across invocations;
// the caller owns the report once it is returned.
//
// Fields:
//   - Updates: All update decisions across both groups
//   - Warnings: All per-package lookup failures across both groups
//   - Examined: Total number of packages inspected
//   - Failed: Number of packages whose lookup failed
type Report struct {
	Updates  []Decision
	Warnings []Warning
	Examined int
	Failed   int
}

// Aggregate merges the runtime and development group results into one report.
//
// Concatenation order is fixed: runtime decisions precede development
// decisions, preserving each group's internal ordering. The inputs are not
// modified.
//
// Parameters:
//   - runtime: Result of reconciling the "dependencies" group
//   - dev: Result of reconciling the "devDependencies" group
//
// Returns:
//   - Report: The merged report with counters computed
func Aggregate(runtime, dev GroupResult) Report {
	report := Report{
		Examined: runtime.Examined + dev.Examined,
		Failed:   len(runtime.Warnings) + len(dev.Warnings),
	}
	report.Updates = append(report.Updates, runtime.Decisions...)
	report.Updates = append(report.Updates, dev.Decisions...)
	report.Warnings = append(report.Warnings, runtime.Warnings...)
	report.Warnings = append(report.Warnings, dev.Warnings...)
	return report
}

// HasUpdates reports whether any package needs updating.
//
// This single boolean drives the caller's choice between the "no updates
// found" and "updated, please reinstall" summary messages.
//
// Returns:
//   - bool: true if at least one update decision exists
func (r Report) HasUpdates() bool {
	return len(r.Updates) > 0
}

// UpdatesFor returns the report's decisions for a single dependency group.
//
// Parameters:
//   - group: The group to filter by
//
// Returns:
//   - []Decision: Decisions belonging to that group, in report order
func (r Report) UpdatesFor(group Group) []Decision {
	var decisions []Decision
	for _, d := range r.Updates {
		if d.Group == group {
			decisions = append(decisions, d)
		}
	}
	return decisions
}

// Apply overwrites decided constraints in a dependency mapping.
//
// Only keys named by the decisions are touched; every other entry keeps its
// value and position, and decisions for packages absent from the mapping are
// skipped. This is the apply-mode half of aggregation: callers that did not
// opt in simply never call it, so read-only report generation performs no
// mutation at all.
//
// Parameters:
//   - deps: The ordered mapping to update in place
//   - decisions: Update decisions to apply
//
// Returns:
//   - int: Number of entries that were overwritten
func Apply(deps *orderedmap.OrderedMap, decisions []Decision) int {
	applied := 0
	for _, d := range decisions {
		if _, ok := deps.Get(d.Name); !ok {
			continue
		}
		deps.Set(d.Name, d.NewConstraint)
		applied++
	}
	return applied
}
