// Package output renders reconciliation results: a terminal table by
// default, JSON and CSV for machine consumption, and a live progress
// indicator while lookups are in flight.
package output

import "strings"

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatCSV outputs the report as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs the report as JSON.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. Valid values are "csv" and "json"; any
// unrecognized format returns FormatTable as the default.
//
// Parameters:
//   - s: Format string to parse (e.g., "csv", "JSON")
//
// Returns:
//   - Format: The parsed format, or FormatTable if unrecognized
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV
	case "json":
		return FormatJSON
	default:
		return FormatTable
	}
}

// IsStructured returns true if the format is for machine consumption.
//
// Structured formats suppress progress rendering and warning chatter on
// stdout so the emitted document stays parseable.
//
// Parameters:
//   - f: The format to check
//
// Returns:
//   - bool: true if format is CSV or JSON; false for table format
func IsStructured(f Format) bool {
	return f == FormatCSV || f == FormatJSON
}
