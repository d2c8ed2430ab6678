package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spektr-org/xpsref/engine"
)

// ============================================================================
// DISCOVERY: Header resolution + column profiling
// ============================================================================
// Resolve maps the headers of a source onto engine columns.
// Describe profiles the raw cells of a CSV source per column:
//   1. Resolve headers → engine columns (unknown headers are skipped)
//   2. Count null tokens, distinct values, unparsable numbers
//   3. Collect sorted sample values and a cardinality hint
// ============================================================================

// ErrNoHeader is returned when a source has no header row.
var ErrNoHeader = errors.New("source has no header row")

// MissingColumnError indicates a required column has no matching header.
type MissingColumnError struct {
	Key     string
	Headers []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in headers %v", e.Key, e.Headers)
}

// Mapping locates engine columns in a source row.
type Mapping struct {
	Index   map[engine.Column]int `json:"-"`
	Skipped []SkippedColumn       `json:"skippedColumns,omitempty"`
}

// SkippedColumn records a source header that maps to no engine column.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Position returns the source index of col, or -1 when absent.
func (m Mapping) Position(col engine.Column) int {
	if idx, ok := m.Index[col]; ok {
		return idx
	}
	return -1
}

// Resolve maps source headers onto engine columns. The first header matching
// a column wins; later duplicates are skipped. A missing required column is
// reported as *MissingColumnError.
func Resolve(headers []string, cfg Config) (Mapping, error) {
	m := Mapping{Index: make(map[engine.Column]int)}
	for i, h := range headers {
		meta, ok := cfg.Lookup(h)
		if !ok {
			m.Skipped = append(m.Skipped, SkippedColumn{Column: h, Reason: "no matching column"})
			continue
		}
		col := meta.Column()
		if _, dup := m.Index[col]; dup {
			m.Skipped = append(m.Skipped, SkippedColumn{Column: h, Reason: "duplicate of " + meta.Key})
			continue
		}
		m.Index[col] = i
	}

	for _, meta := range cfg.Columns {
		if meta.Required {
			if _, ok := m.Index[meta.Column()]; !ok {
				return Mapping{}, &MissingColumnError{Key: meta.Key, Headers: headers}
			}
		}
	}
	return m, nil
}

// ============================================================================
// DESCRIBE: Column profile of a CSV source
// ============================================================================

// Report is the profile of a source.
type Report struct {
	Name           string          `json:"name"`
	Rows           int             `json:"rows"`
	Columns        []ColumnReport  `json:"columns"`
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// ColumnReport profiles one mapped column.
type ColumnReport struct {
	Header          string   `json:"header"`
	Key             string   `json:"key"`
	NullCount       int      `json:"nullCount"`
	UniqueCount     int      `json:"uniqueCount"`
	InvalidCount    int      `json:"invalidCount,omitempty"` // unparsable numeric cells
	SampleValues    []string `json:"sampleValues"`
	CardinalityHint string   `json:"cardinalityHint"` // "low", "medium", "high"
}

// DescribeCSV reads a CSV source and profiles each mapped column.
func DescribeCSV(r io.Reader, cfg Config) (*Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	mapping, err := Resolve(headers, cfg)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	report := &Report{
		Name:           cfg.Name,
		Rows:           len(rows),
		SkippedColumns: mapping.Skipped,
	}
	for _, meta := range cfg.Columns {
		idx := mapping.Position(meta.Column())
		if idx < 0 {
			continue
		}
		report.Columns = append(report.Columns, analyzeColumn(headers[idx], meta, idx, rows, cfg))
	}
	return report, nil
}

// analyzeColumn inspects all values in a column.
func analyzeColumn(header string, meta ColumnMeta, index int, rows [][]string, cfg Config) ColumnReport {
	col := ColumnReport{
		Header: header,
		Key:    meta.Key,
	}

	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) || cfg.IsNull(row[index]) {
			col.NullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if meta.Numeric && !isNumeric(val) {
			col.InvalidCount++
		}
		uniqueSet[val] = true
	}

	col.UniqueCount = len(uniqueSet)
	col.SampleValues = collectSamples(uniqueSet, 10)

	switch {
	case col.UniqueCount <= 10:
		col.CardinalityHint = "low"
	case col.UniqueCount <= 100:
		col.CardinalityHint = "medium"
	default:
		col.CardinalityHint = "high"
	}
	return col
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// normalizeHeader converts "BE (eV)" → "be_(ev)", "Core-Level" → "core_level".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// collectSamples picks up to maxSamples representative values.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
