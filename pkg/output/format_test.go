package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseFormat tests the format string parsing.
//
// It verifies:
//   - Known formats parse case-insensitively
//   - Unknown and empty strings fall back to table
func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatCSV, ParseFormat("csv"))
	assert.Equal(t, FormatTable, ParseFormat(""))
	assert.Equal(t, FormatTable, ParseFormat("xml"))
}

// TestIsStructured tests the structured-format classification.
//
// It verifies:
//   - JSON and CSV are structured; table is not
func TestIsStructured(t *testing.T) {
	assert.True(t, IsStructured(FormatJSON))
	assert.True(t, IsStructured(FormatCSV))
	assert.False(t, IsStructured(FormatTable))
}
