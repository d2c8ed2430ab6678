package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/xpsref/engine"
	"github.com/spektr-org/xpsref/schema"
)

// ============================================================================
// CSV HELPER: Parses CSV data into []engine.Record
// ============================================================================
// Consumer reads the source from wherever it lives (file, archive, database).
// This helper converts raw cells into Records using the schema: headers are
// resolved to engine columns and null tokens become missing values.
// ============================================================================

// ErrEmptyDataset is returned when a source holds a header but no rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// CellError reports a cell that cannot be converted.
type CellError struct {
	Row    int // 1-based source row, header = 1
	Column string
	Value  string
	cause  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("row %d, column %s: invalid value %q", e.Row, e.Column, e.Value)
}

func (e *CellError) Unwrap() error { return e.cause }

// ParseCSV parses CSV data into Records using the schema for header mapping.
// Short rows leave the trailing columns missing; an unparsable binding
// energy is reported as *CellError.
func ParseCSV(r io.Reader, sch schema.Config) ([]engine.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, schema.ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	mapping, err := schema.Resolve(headers, sch)
	if err != nil {
		return nil, err
	}

	var records []engine.Record
	for row := 2; ; row++ {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row, err)
		}

		raw := make([]rawCell, len(cells))
		for i, c := range cells {
			raw[i] = rawCell{value: c, valid: !sch.IsNull(c)}
		}
		rec, err := buildRecord(raw, mapping, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// rawCell is one source cell; valid is false for SQL NULL or a null token.
type rawCell struct {
	value string
	valid bool
}

func buildRecord(cells []rawCell, mapping schema.Mapping, row int) (engine.Record, error) {
	get := func(col engine.Column) rawCell {
		idx := mapping.Position(col)
		if idx < 0 || idx >= len(cells) {
			return rawCell{}
		}
		c := cells[idx]
		c.value = strings.TrimSpace(c.value)
		return c
	}
	text := func(col engine.Column) engine.NullString {
		c := get(col)
		if !c.valid {
			return engine.NullString{}
		}
		return engine.String(c.value)
	}

	rec := engine.Record{
		Element: get(engine.ColumnElement).value,
		Line:    get(engine.ColumnLine).value,
		Formula: text(engine.ColumnFormula),
		Name:    text(engine.ColumnName),
		Journal: text(engine.ColumnJournal),
	}

	if be := get(engine.ColumnBindingEnergy); be.valid {
		v, err := strconv.ParseFloat(be.value, 64)
		if err == nil && (math.IsInf(v, 0) || math.IsNaN(v)) {
			err = fmt.Errorf("non-finite binding energy")
		}
		if err != nil {
			return engine.Record{}, &CellError{
				Row:    row,
				Column: engine.ColumnBindingEnergy.Key(),
				Value:  be.value,
				cause:  err,
			}
		}
		rec.BindingEnergy = engine.Float(v)
	}
	return rec, nil
}

// ParseCSVDataset parses CSV into a Dataset (convenience wrapper).
// A source without rows returns ErrEmptyDataset.
func ParseCSVDataset(r io.Reader, sch schema.Config) (*engine.Dataset, error) {
	records, err := ParseCSV(r, sch)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return engine.NewDataset(records), nil
}
