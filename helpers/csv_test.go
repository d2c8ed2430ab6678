package helpers

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/xpsref/engine"
	"github.com/spektr-org/xpsref/schema"
)

// --- Test Fixtures ---

const referenceCSV = `Element,Line,BE (eV),Formula,Name,Journal
Cu,2p3/2,932.5,CuO,Copper Oxide,J1
Cu,2p3/2,933.6,Cu2O,Cuprous Oxide,J2
Fe,2p3/2,711.0,Fe2O3,Iron Oxide,J3
C,1s,N/A,C.H,,
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(referenceCSV), schema.Default())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, engine.Record{
		Element:       "Cu",
		Line:          "2p3/2",
		BindingEnergy: engine.Float(932.5),
		Formula:       engine.String("CuO"),
		Name:          engine.String("Copper Oxide"),
		Journal:       engine.String("J1"),
	}, records[0])

	last := records[3]
	assert.False(t, last.BindingEnergy.Valid)
	assert.Equal(t, engine.String("C.H"), last.Formula)
	assert.False(t, last.Name.Valid)
	assert.False(t, last.Journal.Valid)
}

func TestParseCSV_ReorderedAndShortRows(t *testing.T) {
	data := "journal,Binding Energy,element,line\nJ1,284.8,C,1s\n,288.5,C\n"

	records, err := ParseCSV(strings.NewReader(data), schema.Default())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, engine.Float(284.8), records[0].BindingEnergy)
	assert.Equal(t, engine.String("J1"), records[0].Journal)
	assert.False(t, records[0].Formula.Valid)

	assert.Equal(t, "", records[1].Line)
	assert.False(t, records[1].Journal.Valid)
}

func TestParseCSV_InvalidEnergy(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"text", "abc"},
		{"infinite", "+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Element,Line,BE (eV)\nCu,2p3/2,932.5\nCu,2p3/2," + tt.value + "\n"
			_, err := ParseCSV(strings.NewReader(data), schema.Default())

			var cellErr *CellError
			require.True(t, errors.As(err, &cellErr))
			assert.Equal(t, 3, cellErr.Row)
			assert.Equal(t, "binding_energy", cellErr.Column)
			assert.Equal(t, tt.value, cellErr.Value)
		})
	}

	// "NaN" is a null token, so it loads as a missing value.
	records, err := ParseCSV(strings.NewReader("Element,Line,BE (eV)\nCu,2p3/2,NaN\n"), schema.Default())
	require.NoError(t, err)
	assert.False(t, records[0].BindingEnergy.Valid)

	_, err = ParseCSV(strings.NewReader("Element,Line,BE (eV)\nCu,2p3/2,abc\n"), schema.Default())
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""), schema.Default())
	assert.ErrorIs(t, err, schema.ErrNoHeader)

	_, err = ParseCSV(strings.NewReader("Element,Formula\nCu,CuO\n"), schema.Default())
	var missing *schema.MissingColumnError
	assert.True(t, errors.As(err, &missing))

	_, err = ParseCSVDataset(strings.NewReader("Element,Line,BE (eV)\n"), schema.Default())
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = ParseCSV(strings.NewReader("Element,Line,BE (eV)\n\"Cu,2p3/2,1\n"), schema.Default())
	assert.Error(t, err)
}

func TestParseCSVDataset(t *testing.T) {
	ds, err := ParseCSVDataset(strings.NewReader(referenceCSV), schema.Default())
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"C", "Cu", "Fe"}, ds.Elements())

	view := engine.Rebuild(ds, engine.FilterCriteria{Element: "Cu"}, engine.DefaultSort())
	assert.Equal(t, []float64{932.5, 933.6}, view.BindingEnergies())
}
