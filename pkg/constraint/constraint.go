// Package constraint models npm-style version constraints as an optional
// range marker ("^" or "~") plus an exact version string. It deliberately
// does not implement full semver range grammar; anything beyond the two
// caret/tilde markers is treated as part of the version text.
package constraint

import "strings"

// Parsed is the decomposed form of a declared constraint string.
//
// Fields:
//   - Prefix: The range marker, one of "^", "~", or "" for exact pins
//   - Base: The version text with every marker character removed
type Parsed struct {
	Prefix string
	Base   string
}

// Parse decomposes a declared constraint string into marker and version.
//
// Every occurrence of '^' and '~' is stripped from the string to obtain the
// base version, and the prefix is chosen by containment: "^" if the string
// contains a caret anywhere, else "~" if it contains a tilde, else "".
// Stripping and detection are intentionally position-independent; for the
// well-formed case (a single leading marker) this is equivalent to prefix
// removal, and malformed inputs degrade without error. Any string is
// accepted, including empty.
//
// Parameters:
//   - declared: The constraint string as written in the manifest (e.g., "^1.2.3")
//
// Returns:
//   - Parsed: The marker/version decomposition
func Parse(declared string) Parsed {
	base := strings.ReplaceAll(declared, "^", "")
	base = strings.ReplaceAll(base, "~", "")

	prefix := ""
	if strings.Contains(declared, "^") {
		prefix = "^"
	} else if strings.Contains(declared, "~") {
		prefix = "~"
	}

	return Parsed{Prefix: prefix, Base: base}
}

// Apply builds a constraint string for a new version, keeping the marker.
//
// The result is plain concatenation of the parsed prefix and the given
// version. Round-trips with Parse only when the original constraint had the
// marker strictly as a leading character and nowhere else.
//
// Parameters:
//   - version: The version text to constrain (e.g., "1.3.0")
//
// Returns:
//   - string: The reconstructed constraint (e.g., "^1.3.0")
func (p Parsed) Apply(version string) string {
	return p.Prefix + version
}

// String reconstructs the constraint from its own parts.
//
// Equivalent to Apply(p.Base).
//
// Returns:
//   - string: The prefix followed by the base version
func (p Parsed) String() string {
	return p.Prefix + p.Base
}
