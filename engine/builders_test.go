package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BUILDER TESTS
// ============================================================================
// Tests cover:
//   1. TableData: labels, sort indicators, two-decimal energies, blanks
//   2. Reference line and details
//   3. ChartConfig: title, annotations, bars, curve series
// ============================================================================

func TestBuildTable(t *testing.T) {
	ds := mixedReferences()
	view := Rebuild(ds, FilterCriteria{Element: "Cu"}, SortState{Column: ColumnBindingEnergy, Ascending: false})

	data := BuildTable(view, SortState{Column: ColumnBindingEnergy, Ascending: false})
	require.Len(t, data.Columns, len(Columns))

	assert.Equal(t,
		[]string{"Element", "Line", "BE (eV) ▼", "Formula", "Name", "Journal"},
		data.Headers())
	assert.Equal(t, "number", data.Columns[2].Type)
	assert.Equal(t, "right", data.Columns[2].Align)
	assert.Equal(t, "left", data.Columns[0].Align)

	assert.Equal(t, [][]string{
		{"Cu", "2p1/2", "952.50", "Cu", "Copper metal", "J. Phys."},
		{"Cu", "2p3/2", "932.70", "Cu", "Copper metal", "J. Phys."},
		{"Cu", "3d", "", "", "copper [valence]", ""},
	}, data.Rows)
	assert.Equal(t, "3 results found", data.Status)
}

func TestBuildTable_IndicatorsAndEmpty(t *testing.T) {
	ds := copperIron()

	data := BuildTable(ApplyFilters(ds, FilterCriteria{Element: "Zn"}), DefaultSort())
	assert.Empty(t, data.Rows)
	assert.Equal(t, "0 results found", data.Status)
	for _, c := range data.Columns {
		assert.Empty(t, c.Sort, c.Key)
	}

	data = BuildTable(ds.View(), SortState{Column: ColumnName, Ascending: true})
	assert.Equal(t, SortIndicatorAsc, data.Columns[4].Sort)
	assert.Equal(t, "Name ▲", data.Headers()[4])
}

func TestFormatReference(t *testing.T) {
	ds := copperIron()
	assert.Equal(t, "Cu 2p3/2 - 932.50 eV - CuO - Copper Oxide - J1", FormatReference(ds.Record(0)))

	r := rec("C", "1s", NullFloat{}, String("C.H"), NullString{}, NullString{})
	assert.Equal(t, "C 1s -  eV - C.H -  - ", FormatReference(r))
}

func TestDetails(t *testing.T) {
	r := rec("Cu", "2p3/2", Float(932.537), String("CuO"), NullString{}, String("J1"))

	assert.Equal(t, []Detail{
		{Label: "Element", Value: "Cu"},
		{Label: "Line", Value: "2p3/2"},
		{Label: "BE (eV)", Value: "932.537"},
		{Label: "Formula", Value: "CuO"},
		{Label: "Journal", Value: "J1"},
	}, Details(r))
}

func TestBuildChart(t *testing.T) {
	h, err := BuildHistogram([]float64{932.5, 933.6}, 0.5)
	require.NoError(t, err)

	cfg := BuildChart(h, FilterCriteria{Element: "Cu", Line: "2p3/2"})
	require.NotNil(t, cfg)

	assert.Equal(t, "Binding Energy Distribution for Cu (2p3/2)", cfg.Title)
	assert.Equal(t, "Binding Energy (eV)", cfg.XAxis)
	assert.Equal(t, "Number of References", cfg.YAxis)
	assert.True(t, cfg.ReverseX)
	assert.Equal(t, []string{"Total References: 2", "Resolution: 0.5 eV"}, cfg.Annotations)

	require.Len(t, cfg.Bars, 3)
	assert.Equal(t, 1, cfg.Bars[0].Count)
	assert.InDelta(t, 933.0, cfg.Bars[0].High, 1e-9)
	assert.InDelta(t, 933.0, cfg.Bars[1].Low, 1e-9)

	require.Len(t, cfg.Series, 1)
	assert.Len(t, cfg.Series[0].Points, DefaultCurvePoints)
}

func TestBuildChart_NoCurveOrData(t *testing.T) {
	assert.Nil(t, BuildChart(nil, FilterCriteria{}))

	h, err := BuildHistogram([]float64{711.0}, 0.1)
	require.NoError(t, err)
	cfg := BuildChart(h, FilterCriteria{})
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Series)
	assert.Greater(t, cfg.XMax, cfg.XMin)
	assert.Equal(t, "Resolution: 0.1 eV", cfg.Annotations[1])
}

func TestChartTitle(t *testing.T) {
	assert.Equal(t, "Binding Energy Distribution", ChartTitle(FilterCriteria{}))
	assert.Equal(t, "Binding Energy Distribution for Fe", ChartTitle(FilterCriteria{Element: "Fe", Line: AllLines}))
}
