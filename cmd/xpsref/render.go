package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/xpsref/engine"
	"github.com/spektr-org/xpsref/schema"
)

// ============================================================================
// RENDERERS: TableData → terminal table, CSV, JSON, text
// ============================================================================

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	statusStyle = lipgloss.NewStyle().Faint(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// output is the JSON document for --format json/pretty.
type output struct {
	Criteria engine.FilterCriteria `json:"criteria"`
	Sort     sortOutput            `json:"sort"`
	Status   string                `json:"status"`
	Records  []engine.Record       `json:"records"`
}

type sortOutput struct {
	Column    string `json:"column,omitempty"`
	Ascending bool   `json:"ascending"`
}

func render(w io.Writer, format string, res *engine.Result) error {
	data := engine.BuildTable(res.View, res.Sort)
	switch format {
	case "json", "pretty":
		return writeJSON(w, output{
			Criteria: res.Criteria,
			Sort:     sortOutput{Column: res.Sort.Column.Key(), Ascending: res.Sort.Ascending},
			Status:   res.Status,
			Records:  res.View.Records(),
		}, format)
	case "csv":
		return writeTableCSV(w, data)
	case "text":
		_, err := fmt.Fprintln(w, res.Status)
		return err
	default:
		return writeTable(w, data)
	}
}

// writeTable renders data as a bordered terminal table with the status line
// below it.
func writeTable(w io.Writer, data *engine.TableData) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(data.Headers()...).
		Rows(data.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < len(data.Columns) && data.Columns[col].Align == "right" {
				return numberStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(), statusStyle.Render(data.Status))
	return err
}

func writeTableCSV(w io.Writer, data *engine.TableData) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(data.Columns))
	for i, c := range data.Columns {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(data.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any, format string) error {
	enc := json.NewEncoder(w)
	if format == "pretty" {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// writeList prints one value per line, or a JSON array for json formats.
func writeList(w io.Writer, format string, values []string) error {
	if format == "json" || format == "pretty" {
		if values == nil {
			values = []string{}
		}
		return writeJSON(w, values, format)
	}
	_, err := fmt.Fprintln(w, strings.Join(values, "\n"))
	return err
}

// writeReference prints the citation line and the labelled fields of r.
func writeReference(w io.Writer, format string, r engine.Record) error {
	if format == "json" || format == "pretty" {
		return writeJSON(w, struct {
			Reference string          `json:"reference"`
			Details   []engine.Detail `json:"details"`
		}{engine.FormatReference(r), engine.Details(r)}, format)
	}
	if _, err := fmt.Fprintln(w, engine.FormatReference(r)); err != nil {
		return err
	}
	for _, d := range engine.Details(r) {
		if _, err := fmt.Fprintf(w, "  %-16s %s\n", d.Label+":", d.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(w io.Writer, format string, report *schema.Report) error {
	if format == "json" || format == "pretty" {
		return writeJSON(w, report, format)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Header", "Column", "Nulls", "Unique", "Invalid", "Cardinality").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range report.Columns {
		t.Row(c.Header, c.Key,
			fmt.Sprint(c.NullCount), fmt.Sprint(c.UniqueCount),
			fmt.Sprint(c.InvalidCount), c.CardinalityHint)
	}
	if _, err := fmt.Fprintf(w, "%s: %d rows\n%s\n", report.Name, report.Rows, t.Render()); err != nil {
		return err
	}
	for _, s := range report.SkippedColumns {
		if _, err := fmt.Fprintf(w, "skipped %q: %s\n", s.Column, s.Reason); err != nil {
			return err
		}
	}
	return nil
}
