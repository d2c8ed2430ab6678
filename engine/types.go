package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ============================================================================
// XPSREF ENGINE TYPES: Reference-table records, criteria and sort state
// ============================================================================
// The engine is read-only over a Dataset. Every result it produces is an
// index list into that Dataset, so records are never copied or fabricated.
// ============================================================================

// AllLines is the line selection that means "no line filter".
const AllLines = "All Lines"

// ============================================================================
// OPTIONAL VALUES: "no value" is distinct from 0 and ""
// ============================================================================

// NullFloat is a float64 that may be absent.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present NullFloat.
func Float(v float64) NullFloat { return NullFloat{Value: v, Valid: true} }

// MarshalJSON encodes a missing value as null.
func (f NullFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts a number or null.
func (f *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode float: %w", err)
	}
	*f = Float(v)
	return nil
}

// Format renders the value with the given precision, or "" when missing.
func (f NullFloat) Format(prec int) string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', prec, 64)
}

// NullString is a string that may be absent.
type NullString struct {
	Value string
	Valid bool
}

// String returns a present NullString. An empty string is still present.
func String(s string) NullString { return NullString{Value: s, Valid: true} }

// MarshalJSON encodes a missing value as null.
func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a string or null.
func (s *NullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NullString{}
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode string: %w", err)
	}
	*s = String(v)
	return nil
}

// Text returns the value, or "" when missing.
func (s NullString) Text() string {
	if !s.Valid {
		return ""
	}
	return s.Value
}

// ============================================================================
// RECORD: One spectroscopic observation
// ============================================================================

// Record is a single row of the reference table.
type Record struct {
	Element       string     `json:"element"`
	Line          string     `json:"line"`
	BindingEnergy NullFloat  `json:"bindingEnergy"`
	Formula       NullString `json:"formula"`
	Name          NullString `json:"name"`
	Journal       NullString `json:"journal"`
}

// ============================================================================
// FILTER CRITERIA
// ============================================================================

// FilterCriteria selects records. The zero value matches everything.
type FilterCriteria struct {
	Element       string `json:"element,omitempty"`
	Line          string `json:"line,omitempty"` // "" or AllLines = any line
	FormulaSearch string `json:"formulaSearch,omitempty"`
	NameSearch    string `json:"nameSearch,omitempty"`
}

// HasLine reports whether the criteria constrain the line.
func (c FilterCriteria) HasLine() bool {
	return c.Line != "" && c.Line != AllLines
}

// IsEmpty reports whether the criteria impose no constraint at all.
func (c FilterCriteria) IsEmpty() bool {
	return c.Element == "" && !c.HasLine() &&
		normalizeTerm(c.FormulaSearch) == "" && normalizeTerm(c.NameSearch) == ""
}

// ============================================================================
// COLUMNS + SORT STATE
// ============================================================================

// Column identifies a table column. ColumnNone selects the default order.
type Column int

const (
	ColumnNone Column = iota
	ColumnElement
	ColumnLine
	ColumnBindingEnergy
	ColumnFormula
	ColumnName
	ColumnJournal
)

// Columns lists the displayable columns in table order.
var Columns = []Column{
	ColumnElement,
	ColumnLine,
	ColumnBindingEnergy,
	ColumnFormula,
	ColumnName,
	ColumnJournal,
}

var columnKeys = map[Column]string{
	ColumnNone:          "",
	ColumnElement:       "element",
	ColumnLine:          "line",
	ColumnBindingEnergy: "binding_energy",
	ColumnFormula:       "formula",
	ColumnName:          "name",
	ColumnJournal:       "journal",
}

var columnLabels = map[Column]string{
	ColumnElement:       "Element",
	ColumnLine:          "Line",
	ColumnBindingEnergy: "BE (eV)",
	ColumnFormula:       "Formula",
	ColumnName:          "Name",
	ColumnJournal:       "Journal",
}

// Key returns the stable identifier of the column.
func (c Column) Key() string { return columnKeys[c] }

// Label returns the display header of the column.
func (c Column) Label() string { return columnLabels[c] }

func (c Column) String() string {
	if c == ColumnNone {
		return "none"
	}
	if k, ok := columnKeys[c]; ok {
		return k
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// IsNumeric reports whether the column compares numerically.
func (c Column) IsNumeric() bool { return c == ColumnBindingEnergy }

// ParseColumn resolves a column key. "" and "none" map to ColumnNone.
// "be" and "energy" are accepted for the binding energy column.
func ParseColumn(key string) (Column, error) {
	switch key {
	case "", "none":
		return ColumnNone, nil
	case "be", "energy":
		return ColumnBindingEnergy, nil
	}
	for col, k := range columnKeys {
		if k == key && col != ColumnNone {
			return col, nil
		}
	}
	return ColumnNone, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
}

// SortState is the active ordering. The zero value is the default order.
type SortState struct {
	Column    Column `json:"column"`
	Ascending bool   `json:"ascending"`
}

// DefaultSort returns the default order (ascending binding energy).
func DefaultSort() SortState {
	return SortState{Column: ColumnNone, Ascending: true}
}

// Toggle applies a header click: the same column flips direction, a
// different column is selected ascending.
func (s SortState) Toggle(col Column) SortState {
	if col != ColumnNone && s.Column == col {
		return SortState{Column: col, Ascending: !s.Ascending}
	}
	return SortState{Column: col, Ascending: true}
}
