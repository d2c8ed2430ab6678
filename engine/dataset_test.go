package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset_Lookups(t *testing.T) {
	ds := mixedReferences()

	assert.Equal(t, 8, ds.Len())
	assert.Equal(t, []string{"C", "Cu", "O"}, ds.Elements())
	assert.True(t, ds.HasElement("Cu"))
	assert.False(t, ds.HasElement("Zn"))
	assert.Equal(t, []string{"2p1/2", "2p3/2", "3d"}, ds.LinesFor("Cu"))
	assert.Nil(t, ds.LinesFor("Zn"))

	assert.Equal(t, []string{AllLines, "2p1/2", "2p3/2", "3d"}, ds.LineChoices("Cu"))
	assert.Equal(t, []string{AllLines}, ds.LineChoices(""))
}

func TestNewDataset_CopiesInput(t *testing.T) {
	records := []Record{rec("Cu", "2p3/2", Float(932.5), String("CuO"), NullString{}, NullString{})}
	ds := NewDataset(records)

	records[0].Element = "Zn"
	assert.Equal(t, "Cu", ds.Record(0).Element)

	out := ds.Records()
	out[0].Element = "Fe"
	assert.Equal(t, "Cu", ds.Record(0).Element)
}

func TestDataset_Find(t *testing.T) {
	ds := mixedReferences()

	tests := []struct {
		name    string
		element string
		line    string
		energy  NullFloat
		formula NullString
		found   bool
		index   int
	}{
		{"exact", "Cu", "2p3/2", Float(932.7), String("Cu"), true, 4},
		{"displayed rounding", "Cu", "2p3/2", Float(932.704), String("Cu"), true, 4},
		{"too far", "Cu", "2p3/2", Float(932.72), String("Cu"), false, 0},
		{"wrong line", "Cu", "2p1/2", Float(932.7), String("Cu"), false, 0},
		{"missing energy", "C", "1s", NullFloat{}, String("C.H"), true, 3},
		{"missing formula", "Cu", "3d", NullFloat{}, NullString{}, true, 6},
		{"unknown element", "Zn", "2p3/2", Float(1021.8), String("ZnO"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ds.Find(tt.element, tt.line, tt.energy, tt.formula)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, ds.Record(tt.index), r)
			}
		})
	}
}

func TestResultView_BindingEnergiesSkipMissing(t *testing.T) {
	ds := mixedReferences()
	view := ApplyFilters(ds, FilterCriteria{Element: "C"})

	assert.Equal(t, 3, view.Len())
	assert.Equal(t, []float64{284.8, 288.5}, view.BindingEnergies())
	assert.Same(t, ds, view.Dataset())
}

func TestNullValues_JSON(t *testing.T) {
	r := rec("C", "1s", NullFloat{}, String(""), NullString{}, String("J"))

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"element":"C","line":"1s","bindingEnergy":null,"formula":"","name":null,"journal":"J"}`,
		string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)

	var f NullFloat
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &f))
}

func TestNullFloat_Format(t *testing.T) {
	assert.Equal(t, "932.50", Float(932.5).Format(2))
	assert.Equal(t, "932.5", Float(932.5).Format(-1))
	assert.Equal(t, "", NullFloat{}.Format(2))
	assert.Equal(t, "0.00", Float(0).Format(2))
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		key  string
		want Column
	}{
		{"", ColumnNone},
		{"none", ColumnNone},
		{"element", ColumnElement},
		{"line", ColumnLine},
		{"be", ColumnBindingEnergy},
		{"energy", ColumnBindingEnergy},
		{"binding_energy", ColumnBindingEnergy},
		{"formula", ColumnFormula},
		{"name", ColumnName},
		{"journal", ColumnJournal},
	}
	for _, tt := range tests {
		got, err := ParseColumn(tt.key)
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	_, err := ParseColumn("BE (eV)")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFilterCriteria(t *testing.T) {
	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.True(t, FilterCriteria{Line: AllLines, NameSearch: "  "}.IsEmpty())
	assert.False(t, FilterCriteria{Element: "Cu"}.IsEmpty())

	assert.False(t, FilterCriteria{Line: AllLines}.HasLine())
	assert.True(t, FilterCriteria{Line: "1s"}.HasLine())
}
