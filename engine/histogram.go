package engine

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ============================================================================
// HISTOGRAM: Binned binding energies + Gaussian KDE overlay
// ============================================================================
// Edges are snapped to one-decimal boundaries that enclose the data:
//   low  = floor(min*10)/10
//   high = ceil(max*10)/10
//   edges = low, low+w, low+2w, ... up to the first edge >= high
// Bins are [e_i, e_i+1) except the last, which is closed on both ends.
//
// The curve is a Gaussian KDE with Silverman's bandwidth, sampled over
// [low, high] and scaled by n*w so it sits on the same axis as the bars.
// ============================================================================

// MaxBins bounds the number of bins a single histogram may hold.
const MaxBins = 1_000_000

// ErrTooManyBins is returned when the bin width is too small for the data
// range.
var ErrTooManyBins = errors.New("bin width too small for data range")

// Curve skip reasons.
const (
	CurveDisabled     = "disabled"
	CurveZeroVariance = "zero variance"
)

// Resolutions are the bin widths offered to users, in eV.
var Resolutions = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

// CurvePoint is one sample of the density curve.
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Histogram is the render-ready distribution of a set of values.
type Histogram struct {
	Edges    []float64 `json:"edges"`
	Counts   []int     `json:"counts"`
	Low      float64   `json:"low"`  // snapped lower bound (= Edges[0])
	High     float64   `json:"high"` // snapped upper bound (<= last edge)
	BinWidth float64   `json:"binWidth"`
	Total    int       `json:"total"`

	Curve        []CurvePoint `json:"curve,omitempty"`
	Bandwidth    float64      `json:"bandwidth,omitempty"`
	CurveSkipped string       `json:"curveSkipped,omitempty"`
}

// Bins returns the number of bins.
func (h *Histogram) Bins() int { return len(h.Counts) }

// BuildHistogram bins values at the given width and, unless disabled,
// attaches a smoothed density curve. Empty input returns ErrNoData.
func BuildHistogram(values []float64, binWidth float64, opts ...Option) (*Histogram, error) {
	cfg := applyOptions(opts)

	if binWidth <= 0 || math.IsNaN(binWidth) || math.IsInf(binWidth, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBinWidth, binWidth)
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &NonFiniteValueError{Index: i, Value: v}
		}
	}

	minV, maxV, _ := MinMax(values)
	low := math.Floor(minV*10) / 10
	high := math.Ceil(maxV*10) / 10

	edges, err := binEdges(low, high, binWidth)
	if err != nil {
		return nil, err
	}

	h := &Histogram{
		Edges:    edges,
		Counts:   countBins(values, edges),
		Low:      low,
		High:     high,
		BinWidth: binWidth,
		Total:    len(values),
	}

	if !cfg.Curve {
		h.CurveSkipped = CurveDisabled
		return h, nil
	}
	// Identical values can leave a rounding residue in the standard
	// deviation, so equal extremes decide zero variance.
	if minV == maxV {
		h.CurveSkipped = CurveZeroVariance
		return h, nil
	}
	bw := SilvermanBandwidth(values)
	if bw <= 0 {
		h.CurveSkipped = CurveZeroVariance
		return h, nil
	}
	h.Bandwidth = bw
	h.Curve = densityCurve(values, bw, binWidth, low, high, cfg.CurvePoints, cfg.ParallelThreshold)
	return h, nil
}

// binEdges returns low, low+w, ... through the first edge >= high, with at
// least one bin. An edge within rounding distance of high snaps to high so
// the maximum value is always enclosed.
func binEdges(low, high, w float64) ([]float64, error) {
	if n := (high - low) / w; n > MaxBins {
		return nil, fmt.Errorf("%w: %.0f bins", ErrTooManyBins, math.Ceil(n))
	}
	tol := w * 1e-9
	edges := []float64{low}
	for i := 1; ; i++ {
		e := low + float64(i)*w
		if math.Abs(e-high) <= tol {
			e = high
		}
		edges = append(edges, e)
		if e >= high {
			return edges, nil
		}
	}
}

// countBins counts values per [e_i, e_i+1) bin; the last bin is closed.
func countBins(values, edges []float64) []int {
	nb := len(edges) - 1
	counts := make([]int, nb)
	for _, v := range values {
		idx := sort.Search(len(edges), func(k int) bool { return edges[k] > v }) - 1
		if idx >= nb {
			idx = nb - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return counts
}

// densityCurve samples the scaled KDE at points equally spaced over
// [low, high]. Every point is computed independently with the same
// summation order, so the parallel path returns identical output.
func densityCurve(values []float64, bandwidth, binWidth, low, high float64, points, parallelThreshold int) []CurvePoint {
	curve := make([]CurvePoint, points)
	step := 0.0
	if points > 1 {
		step = (high - low) / float64(points-1)
	}
	n := float64(len(values))
	scale := n * binWidth

	eval := func(from, to int) {
		for k := from; k < to; k++ {
			x := low + float64(k)*step
			if k == points-1 {
				x = high
			}
			curve[k] = CurvePoint{X: x, Y: gaussianKDE(values, bandwidth, x) * scale}
		}
	}

	if parallelThreshold <= 0 || len(values)*points <= parallelThreshold {
		eval(0, points)
		return curve
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (points + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for from := 0; from < points; from += chunk {
		from := from
		to := min(from+chunk, points)
		g.Go(func() error {
			eval(from, to)
			return nil
		})
	}
	_ = g.Wait()
	return curve
}

var invSqrt2Pi = 1 / math.Sqrt(2*math.Pi)

// gaussianKDE evaluates the Gaussian kernel density estimate at x.
func gaussianKDE(values []float64, bandwidth, x float64) float64 {
	var sum float64
	for _, v := range values {
		u := (x - v) / bandwidth
		sum += math.Exp(-0.5*u*u) * invSqrt2Pi
	}
	return sum / (float64(len(values)) * bandwidth)
}
