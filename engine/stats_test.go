package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	lo, hi, ok := MinMax([]float64{3, -1, 7, 2})
	assert.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	_, _, ok = MinMax(nil)
	assert.False(t, ok)
}

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, Mean(values))
	assert.InDelta(t, math.Sqrt(32.0/7), StdDev(values), 1e-12)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, StdDev([]float64{42}))
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.q), 1e-12, "q=%v", tt.q)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	assert.InDelta(t, 1.5, InterquartileRange([]float64{4, 1, 3, 2}), 1e-12)
}

func TestSilvermanBandwidth(t *testing.T) {
	t.Run("iqr smaller than sd", func(t *testing.T) {
		want := 0.9 * math.Min(math.Sqrt(5.0/3), 1.5/1.34) * math.Pow(4, -0.2)
		assert.InDelta(t, want, SilvermanBandwidth([]float64{1, 2, 3, 4}), 1e-12)
	})

	t.Run("degenerate iqr falls back to sd", func(t *testing.T) {
		values := []float64{1, 1, 1, 1, 10}
		want := 0.9 * StdDev(values) * math.Pow(5, -0.2)
		assert.InDelta(t, want, SilvermanBandwidth(values), 1e-12)
	})

	t.Run("undefined", func(t *testing.T) {
		assert.Equal(t, 0.0, SilvermanBandwidth(nil))
		assert.Equal(t, 0.0, SilvermanBandwidth([]float64{5}))
		assert.Equal(t, 0.0, SilvermanBandwidth([]float64{5, 5, 5}))
	})

	t.Run("identical values with inexact mean", func(t *testing.T) {
		for _, v := range []float64{0.1, 284.8, 711.3, 933.6} {
			values := make([]float64, 10)
			for i := range values {
				values[i] = v
			}
			assert.Equal(t, 0.0, SilvermanBandwidth(values), "value %v", v)
			assert.Equal(t, 0.0, SilvermanBandwidth(values[:3]), "value %v", v)
		}
	})
}
