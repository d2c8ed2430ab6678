package schema

import (
	"strings"

	"github.com/spektr-org/xpsref/engine"
)

// ============================================================================
// SCHEMA: Describes the source layout of a binding energy reference table
// ============================================================================
// Loaders use the schema to map source headers onto engine columns and to
// decide which raw cells mean "no value".
// ============================================================================

// Config describes the complete shape of a reference table source.
type Config struct {
	Name        string       `json:"name"`
	Version     string       `json:"version,omitempty"`
	Description string       `json:"description,omitempty"`
	Columns     []ColumnMeta `json:"columns"`

	// Raw cell values treated as missing, compared after trimming.
	NullTokens []string `json:"nullTokens"`
}

// ColumnMeta describes one source column.
type ColumnMeta struct {
	Key         string   `json:"key"` // engine.Column key
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"` // accepted header spellings
	Numeric     bool     `json:"numeric,omitempty"`
	Required    bool     `json:"required,omitempty"`
}

// Column returns the engine column the metadata describes.
func (m ColumnMeta) Column() engine.Column {
	col, err := engine.ParseColumn(m.Key)
	if err != nil {
		return engine.ColumnNone
	}
	return col
}

// DefaultNullTokens are the cell values read as missing.
var DefaultNullTokens = []string{"", "null", "NULL", "N/A", "n/a", "NaN", "nan", "None"}

// Default returns the schema of the binding energy reference table.
func Default() Config {
	return Config{
		Name:        "Binding Energy Reference",
		Version:     "1.0",
		Description: "One row per observation: element, line, binding energy, formula, name, journal.",
		Columns: []ColumnMeta{
			{Key: engine.ColumnElement.Key(), DisplayName: "Element", Aliases: []string{"element", "symbol"}, Required: true},
			{Key: engine.ColumnLine.Key(), DisplayName: "Line", Aliases: []string{"line", "core_level", "orbital"}, Required: true},
			{Key: engine.ColumnBindingEnergy.Key(), DisplayName: "BE (eV)", Aliases: []string{"be_(ev)", "be", "binding_energy", "bindingenergy", "binding_energy_(ev)", "energy"}, Numeric: true, Required: true},
			{Key: engine.ColumnFormula.Key(), DisplayName: "Formula", Aliases: []string{"formula", "chemical_formula"}},
			{Key: engine.ColumnName.Key(), DisplayName: "Name", Aliases: []string{"name", "compound", "compound_name"}},
			{Key: engine.ColumnJournal.Key(), DisplayName: "Journal", Aliases: []string{"journal", "citation", "reference", "source"}},
		},
		NullTokens: DefaultNullTokens,
	}
}

// IsNull reports whether a raw cell value means "no value".
func (c Config) IsNull(raw string) bool {
	raw = strings.TrimSpace(raw)
	for _, tok := range c.NullTokens {
		if raw == tok {
			return true
		}
	}
	return false
}

// ColumnKeys returns all column keys.
func (c Config) ColumnKeys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

// Lookup finds the column whose key or alias matches a source header.
// Headers are compared normalized, so "BE (eV)" matches "be_(ev)".
func (c Config) Lookup(header string) (ColumnMeta, bool) {
	key := normalizeHeader(header)
	for _, col := range c.Columns {
		if key == col.Key {
			return col, true
		}
		for _, alias := range col.Aliases {
			if key == alias {
				return col, true
			}
		}
	}
	return ColumnMeta{}, false
}
