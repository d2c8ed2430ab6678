package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/xpsref/engine"
)

// ============================================================================
// PLOT: ChartConfig → PNG
// ============================================================================
// Bars are drawn as a filled step series so the bin edges line up exactly
// with the density curve. The energy axis runs high → low.
// ============================================================================

const (
	plotWidth  = 1000
	plotHeight = 600
)

// writePlot writes the chart to path: the chart model as JSON for a .json
// path, otherwise a PNG image.
func writePlot(path string, cfg *engine.ChartConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.NewEncoder(f).Encode(cfg)
	} else {
		err = renderPNG(f, cfg)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func renderPNG(w io.Writer, cfg *engine.ChartConfig) error {
	return newChart(cfg).Render(chart.PNG, w)
}

func newChart(cfg *engine.ChartConfig) chart.Chart {
	barColor := hexColor(cfg.BarColor)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name: "References",
			Style: chart.Style{
				StrokeColor: barColor.WithAlpha(255),
				StrokeWidth: 1,
				FillColor:   barColor.WithAlpha(180),
			},
			XValues: stepX(cfg.Bars),
			YValues: stepY(cfg.Bars),
		},
	}

	for _, s := range cfg.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   chart.Style{StrokeColor: hexColor(s.Color), StrokeWidth: 2},
			XValues: xs,
			YValues: ys,
		})
	}

	// Annotations sit at the top of the low-energy end, which is drawn on
	// the right.
	top := max(maxCount(cfg.Bars), maxSeriesY(cfg.Series))
	var notes []chart.Value2
	for i, a := range cfg.Annotations {
		notes = append(notes, chart.Value2{
			XValue: cfg.XMin,
			YValue: top * (1 - 0.08*float64(i)),
			Label:  a,
		})
	}
	if len(notes) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: notes})
	}

	gridStyle := chart.Style{StrokeColor: drawing.ColorFromHex("DDDDDD"), StrokeWidth: 1}
	graph := chart.Chart{
		Title:  cfg.Title,
		Width:  plotWidth,
		Height: plotHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  cfg.XAxis,
			Range: &chart.ContinuousRange{Min: cfg.XMin, Max: cfg.XMax, Descending: cfg.ReverseX},
		},
		YAxis: chart.YAxis{
			Name:  cfg.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(top*1.1, 1)},
		},
		Series: series,
	}
	if cfg.ShowGrid {
		graph.XAxis.GridMajorStyle = gridStyle
		graph.YAxis.GridMajorStyle = gridStyle
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

// stepX and stepY trace the outline of the bars: up the left edge, across
// the top and down the right edge of every bin.
func stepX(bars []engine.ChartBar) []float64 {
	xs := make([]float64, 0, 4*len(bars))
	for _, b := range bars {
		xs = append(xs, b.Low, b.Low, b.High, b.High)
	}
	return xs
}

func stepY(bars []engine.ChartBar) []float64 {
	ys := make([]float64, 0, 4*len(bars))
	for _, b := range bars {
		c := float64(b.Count)
		ys = append(ys, 0, c, c, 0)
	}
	return ys
}

func maxCount(bars []engine.ChartBar) float64 {
	top := 0
	for _, b := range bars {
		top = max(top, b.Count)
	}
	return float64(top)
}

// maxSeriesY returns the highest curve sample so a narrow peak is not
// clipped by the bar range.
func maxSeriesY(series []engine.ChartSeries) float64 {
	top := 0.0
	for _, s := range series {
		for _, p := range s.Points {
			top = max(top, p.Y)
		}
	}
	return top
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
