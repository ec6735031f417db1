package output

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/ajxudir/depsync/pkg/reconcile"
)

// jsonReport is the envelope emitted for the JSON format.
type jsonReport struct {
	Updates  []jsonUpdate  `json:"updates"`
	Warnings []jsonWarning `json:"warnings"`
	Examined int           `json:"examined"`
	Failed   int           `json:"failed"`
}

type jsonUpdate struct {
	Name     string `json:"name"`
	From     string `json:"from"`
	To       string `json:"to"`
	Group    string `json:"group"`
	Severity string `json:"severity"`
}

type jsonWarning struct {
	Package string `json:"package"`
	Reason  string `json:"reason"`
}

// WriteReport renders a reconciliation report in the requested format.
//
// Table format writes one row per update decision with a severity column;
// when there are no updates nothing is written, leaving the summary message
// to the caller. JSON and CSV always emit a complete document, including an
// empty update list.
//
// Parameters:
//   - w: Destination writer (typically os.Stdout)
//   - report: The report to render
//   - format: Output format selection
//
// Returns:
//   - error: Write or encoding error; nil on success
func WriteReport(w io.Writer, report reconcile.Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSONReport(w, report)
	case FormatCSV:
		return writeCSVReport(w, report)
	default:
		return writeTableReport(w, report)
	}
}

// writeTableReport renders the default terminal table.
//
// Parameters:
//   - w: Destination writer
//   - report: The report to render
//
// Returns:
//   - error: Write error; nil on success
func writeTableReport(w io.Writer, report reconcile.Report) error {
	if !report.HasUpdates() {
		return nil
	}

	table := NewTable().
		AddColumn("PACKAGE").
		AddColumn("GROUP").
		AddColumn("FROM").
		AddColumn("TO").
		AddColumn("SEVERITY")

	for _, d := range report.Updates {
		table.Fit(d.Name, string(d.Group), d.OldConstraint, d.NewConstraint, string(d.Severity()))
	}

	if err := table.WriteHeader(w); err != nil {
		return err
	}
	for _, d := range report.Updates {
		if err := table.WriteRow(w, d.Name, string(d.Group), d.OldConstraint, d.NewConstraint, string(d.Severity())); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONReport renders the report as an indented JSON document.
//
// Parameters:
//   - w: Destination writer
//   - report: The report to render
//
// Returns:
//   - error: Encoding error; nil on success
func writeJSONReport(w io.Writer, report reconcile.Report) error {
	doc := jsonReport{
		Updates:  []jsonUpdate{},
		Warnings: []jsonWarning{},
		Examined: report.Examined,
		Failed:   report.Failed,
	}
	for _, d := range report.Updates {
		doc.Updates = append(doc.Updates, jsonUpdate{
			Name:     d.Name,
			From:     d.OldConstraint,
			To:       d.NewConstraint,
			Group:    string(d.Group),
			Severity: string(d.Severity()),
		})
	}
	for _, warning := range report.Warnings {
		doc.Warnings = append(doc.Warnings, jsonWarning{
			Package: warning.Package,
			Reason:  warning.Reason(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// writeCSVReport renders the report's updates as CSV with a header row.
//
// Parameters:
//   - w: Destination writer
//   - report: The report to render
//
// Returns:
//   - error: Write error; nil on success
func writeCSVReport(w io.Writer, report reconcile.Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"package", "group", "from", "to", "severity"}); err != nil {
		return err
	}
	for _, d := range report.Updates {
		record := []string{d.Name, string(d.Group), d.OldConstraint, d.NewConstraint, string(d.Severity())}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
