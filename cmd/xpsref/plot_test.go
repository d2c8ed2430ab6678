package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/spektr-org/xpsref/engine"
)

func TestStepOutline(t *testing.T) {
	bars := []engine.ChartBar{
		{Low: 1.0, High: 1.5, Count: 2},
		{Low: 1.5, High: 2.0, Count: 1},
	}
	assert.Equal(t, []float64{1.0, 1.0, 1.5, 1.5, 1.5, 1.5, 2.0, 2.0}, stepX(bars))
	assert.Equal(t, []float64{0, 2, 2, 0, 0, 1, 1, 0}, stepY(bars))
	assert.Equal(t, 2.0, maxCount(bars))
}

func TestNewChart_CurveAboveBars(t *testing.T) {
	cfg := &engine.ChartConfig{
		XMin: 0, XMax: 1,
		Bars: []engine.ChartBar{{Low: 0, High: 1, Count: 3}},
		Series: []engine.ChartSeries{{
			Name:   "Density",
			Points: []engine.CurvePoint{{X: 0, Y: 0.5}, {X: 0.5, Y: 9}, {X: 1, Y: 0.5}},
		}},
	}
	assert.Equal(t, 9.0, maxSeriesY(cfg.Series))

	graph := newChart(cfg)
	yr, ok := graph.YAxis.Range.(*chart.ContinuousRange)
	require.True(t, ok)
	assert.GreaterOrEqual(t, yr.Max, 9.0)
}

func TestRenderPNG_SingleBin(t *testing.T) {
	h, err := engine.BuildHistogram([]float64{711.0}, 0.1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderPNG(&buf, engine.BuildChart(h, engine.FilterCriteria{Element: "Fe"})))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestNewChart_Axes(t *testing.T) {
	h, err := engine.BuildHistogram([]float64{932.5, 933.6}, 0.5)
	require.NoError(t, err)
	cfg := engine.BuildChart(h, engine.FilterCriteria{Element: "Cu"})

	graph := newChart(cfg)
	require.Len(t, graph.Series, 3) // bars, density, annotations
	assert.Equal(t, cfg.Title, graph.Title)
	assert.Equal(t, "Binding Energy (eV)", graph.XAxis.Name)
}
