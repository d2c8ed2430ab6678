package engine

import (
	"math"
	"slices"
)

// ============================================================================
// STATS: Sample statistics over binding energies
// ============================================================================

// MinMax returns the smallest and largest values. ok is false for no values.
func MinMax(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator).
// Fewer than two values yield 0.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// Quantile returns the q-th quantile (0..1) of sorted values using linear
// interpolation between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case n == 1 || q <= 0:
		return sorted[0]
	case q >= 1:
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// InterquartileRange returns Q3 - Q1 of the values.
func InterquartileRange(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return Quantile(sorted, 0.75) - Quantile(sorted, 0.25)
}

// SilvermanBandwidth returns 0.9 * min(sd, IQR/1.34) * n^(-1/5). A degenerate
// IQR falls back to the standard deviation alone. Zero means the bandwidth is
// undefined (identical values or too few values).
func SilvermanBandwidth(values []float64) float64 {
	n := len(values)
	if lo, hi, ok := MinMax(values); !ok || lo == hi {
		return 0
	}
	sd := StdDev(values)
	if n < 2 || sd <= 0 || math.IsNaN(sd) {
		return 0
	}
	spread := sd
	if iqr := InterquartileRange(values); iqr > 0 {
		spread = math.Min(sd, iqr/1.34)
	}
	return 0.9 * spread * math.Pow(float64(n), -0.2)
}
