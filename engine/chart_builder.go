package engine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// CHART BUILDER: Produces ChartConfig from a Histogram
// ============================================================================
// Binding energy plots are conventionally drawn with the energy axis
// descending. That is recorded as ReverseX; renderers decide how to honor it.
// ============================================================================

// Series colors.
const (
	barColor   = "#87CEEB"
	curveColor = "#EF4444"
)

// ChartConfig defines how to render the distribution chart.
type ChartConfig struct {
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis"`
	YAxis       string        `json:"yAxis"`
	XMin        float64       `json:"xMin"`
	XMax        float64       `json:"xMax"`
	ReverseX    bool          `json:"reverseX"`
	Bars        []ChartBar    `json:"bars"`
	Series      []ChartSeries `json:"series,omitempty"`
	Annotations []string      `json:"annotations"`
	BarColor    string        `json:"barColor"`
	ShowGrid    bool          `json:"showGrid"`
}

// ChartBar is one histogram bar.
type ChartBar struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ChartSeries is a continuous line over the bars.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []CurvePoint `json:"points"`
	Color  string       `json:"color,omitempty"`
}

// BuildChart produces a ChartConfig for a histogram of the selection
// described by criteria. The x range spans the bar edges, so it is never
// empty even for a single value.
func BuildChart(h *Histogram, criteria FilterCriteria) *ChartConfig {
	if h == nil || h.Bins() == 0 {
		return nil
	}

	config := &ChartConfig{
		Title:    ChartTitle(criteria),
		XAxis:    "Binding Energy (eV)",
		YAxis:    "Number of References",
		XMin:     h.Low,
		XMax:     h.Edges[len(h.Edges)-1],
		ReverseX: true,
		BarColor: barColor,
		ShowGrid: true,
		Annotations: []string{
			fmt.Sprintf("Total References: %d", h.Total),
			fmt.Sprintf("Resolution: %s eV", strconv.FormatFloat(h.BinWidth, 'f', -1, 64)),
		},
	}

	config.Bars = make([]ChartBar, h.Bins())
	for i, c := range h.Counts {
		config.Bars[i] = ChartBar{Low: h.Edges[i], High: h.Edges[i+1], Count: c}
	}

	if len(h.Curve) > 0 {
		config.Series = []ChartSeries{{
			Name:   "Density",
			Points: h.Curve,
			Color:  curveColor,
		}}
	}
	return config
}

// ChartTitle names the plotted selection.
func ChartTitle(criteria FilterCriteria) string {
	title := "Binding Energy Distribution"
	if criteria.Element != "" {
		title += " for " + criteria.Element
	}
	if criteria.HasLine() {
		title += " (" + criteria.Line + ")"
	}
	return title
}
