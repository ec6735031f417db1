package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParse tests the behavior of Parse with the common constraint shapes.
//
// It verifies:
//   - Caret and tilde prefixes are detected and stripped
//   - Unmarked constraints parse with an empty prefix
//   - Any string is accepted, including empty
func TestParse(t *testing.T) {
	t.Run("caret prefix", func(t *testing.T) {
		parsed := Parse("^1.2.3")
		assert.Equal(t, "^", parsed.Prefix)
		assert.Equal(t, "1.2.3", parsed.Base)
	})

	t.Run("tilde prefix", func(t *testing.T) {
		parsed := Parse("~1.2.3")
		assert.Equal(t, "~", parsed.Prefix)
		assert.Equal(t, "1.2.3", parsed.Base)
	})

	t.Run("exact pin", func(t *testing.T) {
		parsed := Parse("1.2.3")
		assert.Equal(t, "", parsed.Prefix)
		assert.Equal(t, "1.2.3", parsed.Base)
	})

	t.Run("empty string", func(t *testing.T) {
		parsed := Parse("")
		assert.Equal(t, "", parsed.Prefix)
		assert.Equal(t, "", parsed.Base)
	})

	t.Run("prerelease version", func(t *testing.T) {
		parsed := Parse("^2.0.0-beta.1")
		assert.Equal(t, "^", parsed.Prefix)
		assert.Equal(t, "2.0.0-beta.1", parsed.Base)
	})
}

// TestParseMarkerAnywhere tests the position-independent marker handling.
//
// It verifies:
//   - Markers are stripped wherever they occur, not only as a prefix
//   - Caret wins over tilde when both are present
func TestParseMarkerAnywhere(t *testing.T) {
	t.Run("embedded caret", func(t *testing.T) {
		parsed := Parse("1.^2.3")
		assert.Equal(t, "^", parsed.Prefix)
		assert.Equal(t, "1.2.3", parsed.Base)
	})

	t.Run("both markers", func(t *testing.T) {
		parsed := Parse("~1.2.3^")
		assert.Equal(t, "^", parsed.Prefix)
		assert.Equal(t, "1.2.3", parsed.Base)
	})

	t.Run("repeated markers", func(t *testing.T) {
		parsed := Parse("^^1.0.0")
		assert.Equal(t, "^", parsed.Prefix)
		assert.Equal(t, "1.0.0", parsed.Base)
	})
}

// TestApply tests the behavior of Apply when building new constraints.
//
// It verifies:
//   - The parsed marker carries over to the new version
//   - An empty prefix yields the bare version
func TestApply(t *testing.T) {
	assert.Equal(t, "^1.3.0", Parse("^1.0.0").Apply("1.3.0"))
	assert.Equal(t, "~4.18.3", Parse("~4.17.21").Apply("4.18.3"))
	assert.Equal(t, "2.0.0", Parse("1.0.0").Apply("2.0.0"))
}

// TestRoundTrip tests the parse/format round-trip property.
//
// It verifies:
//   - Constraints with at most one leading marker reconstruct exactly
func TestRoundTrip(t *testing.T) {
	for _, declared := range []string{"^1.2.3", "~0.0.1", "1.0.0", "", "^10.20.30-rc.1+build5"} {
		parsed := Parse(declared)
		assert.Equal(t, declared, parsed.Prefix+parsed.Base, "round-trip for %q", declared)
		assert.Equal(t, declared, parsed.String())
	}
}
