package output

import (
	"fmt"
	"io"

	"github.com/ajxudir/depsync/pkg/utils"
)

// Column represents a single table column with its header and current width.
//
// Fields:
//   - Header: The display text for this column's header
//   - Width: The current display width for this column in characters
type Column struct {
	Header string
	Width  int
}

// Table is a small terminal table formatter with dynamic column widths and
// Unicode-aware width calculation.
//
// Fields:
//   - columns: List of columns with their headers and widths
//   - separator: String used to separate columns (default: two spaces)
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a new table formatter and returns a pointer to it.
//
// Returns:
//   - *Table: A new table instance ready for column configuration
func NewTable() *Table {
	return &Table{separator: "  "}
}

// AddColumn adds a column with the given header and returns the table.
//
// The initial width is the display width of the header.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.DisplayWidth(header),
	})
	return t
}

// Fit widens columns to accommodate a row's values.
//
// Call once per row before writing anything, so every column ends up as wide
// as its widest cell.
//
// Parameters:
//   - values: One value per column; extra values are ignored
func (t *Table) Fit(values ...string) {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		t.columns[i].Width = utils.Max(t.columns[i].Width, utils.DisplayWidth(val))
	}
}

// WriteHeader writes the header row.
//
// Parameters:
//   - w: Destination writer
//
// Returns:
//   - error: Write error; nil on success
func (t *Table) WriteHeader(w io.Writer) error {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return t.WriteRow(w, headers...)
}

// WriteRow writes one row, padding each cell to its column width.
//
// The final cell is written unpadded to avoid trailing whitespace.
//
// Parameters:
//   - w: Destination writer
//   - values: One value per column
//
// Returns:
//   - error: Write error; nil on success
func (t *Table) WriteRow(w io.Writer, values ...string) error {
	line := ""
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		if i == len(values)-1 || i == len(t.columns)-1 {
			line += val
		} else {
			line += utils.ToWidth(val, t.columns[i].Width) + t.separator
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
