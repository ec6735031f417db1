package reconcile

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ajxudir/depsync/pkg/constraint"
)

// Severity classifies how far an update decision moves a version.
type Severity string

const (
	// SeverityMajor indicates the major version component changed.
	SeverityMajor Severity = "major"
	// SeverityMinor indicates the minor version component changed.
	SeverityMinor Severity = "minor"
	// SeverityPatch indicates only the patch component (or below) changed.
	SeverityPatch Severity = "patch"
	// SeverityUnknown indicates one of the versions is not valid semver.
	SeverityUnknown Severity = "unknown"
)

// Severity classifies the decision's version jump for display purposes.
//
// This is informational only: update detection is always plain string
// inequality, and this classification never influences whether a decision
// exists. Versions that do not parse as semver classify as unknown.
//
// Returns:
//   - Severity: The classification of the old-to-new version change
func (d Decision) Severity() Severity {
	oldVer := canonicalVersion(constraint.Parse(d.OldConstraint).Base)
	newVer := canonicalVersion(constraint.Parse(d.NewConstraint).Base)
	if oldVer == "" || newVer == "" {
		return SeverityUnknown
	}

	if semver.Major(oldVer) != semver.Major(newVer) {
		return SeverityMajor
	}
	if semver.MajorMinor(oldVer) != semver.MajorMinor(newVer) {
		return SeverityMinor
	}
	return SeverityPatch
}

// canonicalVersion normalizes a bare version string for the semver package,
// which requires a leading "v".
//
// Parameters:
//   - version: The version text from a parsed constraint
//
// Returns:
//   - string: A valid "v"-prefixed semver string, or "" if not parseable
func canonicalVersion(version string) string {
	v := "v" + strings.TrimPrefix(strings.TrimSpace(version), "v")
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
