package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPassVariance(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}

	return ss / float64(len(xs)-1)
}

func TestAccumulatorSingleSample(t *testing.T) {
	var a Accumulator
	a.Add(10 * time.Millisecond)

	assert.Equal(t, 1, a.N())
	assert.InDelta(t, 0.01, a.Mean(), 1e-12)

	v, ok := a.Variance()
	assert.False(t, ok, "variance must not apply to a single sample")
	assert.False(t, math.IsNaN(v))

	_, ok = a.Stdev()
	assert.False(t, ok)
}

func TestAccumulatorEmpty(t *testing.T) {
	var a Accumulator

	assert.Zero(t, a.Mean())
	_, ok := a.Variance()
	assert.False(t, ok)
}

func TestVarianceMatchesTwoPass(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
	}{
		{"two", []float64{0.010, 0.012}},
		{"five", []float64{0.0101, 0.0099, 0.0102, 0.0098, 0.0100}},
		{"spread", []float64{1e-6, 3e-3, 2.5e-4, 7e-2}},
		{"integers", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Accumulator
			for _, s := range tt.samples {
				a.AddSeconds(s)
			}

			got, ok := a.Variance()
			require.True(t, ok)

			want := twoPassVariance(tt.samples)
			assert.InEpsilon(t, want, got, 1e-9)

			sd, ok := a.Stdev()
			require.True(t, ok)
			assert.InEpsilon(t, math.Sqrt(want), sd, 1e-9)
		})
	}
}

func TestVarianceConstantSeries(t *testing.T) {
	var a Accumulator
	for range 7 {
		a.AddSeconds(0.1)
	}

	v, ok := a.Variance()
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.InDelta(t, 0, v, 1e-15)
}

func TestAccumulatorTotals(t *testing.T) {
	var a Accumulator
	a.Add(2 * time.Second)
	a.Add(3 * time.Second)

	assert.InDelta(t, 5.0, a.Total(), 1e-12)
	assert.InDelta(t, 13.0, a.SumOfSquares(), 1e-12)
	assert.InDelta(t, 2.5, a.Mean(), 1e-12)

	a.Reset()
	assert.Zero(t, a.N())
	assert.Zero(t, a.Total())
}
