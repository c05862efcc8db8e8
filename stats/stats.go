// Package stats accumulates timing samples and derives descriptive
// statistics from running totals.
package stats

import (
	"math"
	"time"
)

// Accumulator keeps the running total and sum of squares of a series of
// samples measured in seconds. The zero value is ready to use.
type Accumulator struct {
	n     int
	total float64
	sosq  float64
}

// Add records one elapsed duration.
func (a *Accumulator) Add(d time.Duration) {
	a.AddSeconds(d.Seconds())
}

// AddSeconds records one sample expressed in seconds.
func (a *Accumulator) AddSeconds(s float64) {
	a.n++
	a.total += s
	a.sosq += s * s
}

// Reset clears all recorded samples.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// N returns the number of recorded samples.
func (a *Accumulator) N() int { return a.n }

// Total returns the sum of all samples.
func (a *Accumulator) Total() float64 { return a.total }

// SumOfSquares returns the sum of the squared samples.
func (a *Accumulator) SumOfSquares() float64 { return a.sosq }

// Mean returns total/n, or 0 when nothing was recorded.
func (a *Accumulator) Mean() float64 {
	if a.n == 0 {
		return 0
	}

	return a.total / float64(a.n)
}

// Variance returns the sample variance computed from the running totals as
// (sosq - total²/n) / (n-1). The boolean is false when fewer than two
// samples were recorded and the variance is not applicable.
func (a *Accumulator) Variance() (float64, bool) {
	if a.n < 2 {
		return 0, false
	}

	n := float64(a.n)
	v := (a.sosq - a.total*a.total/n) / (n - 1)

	// Cancellation can push near-constant series slightly below zero.
	if v < 0 {
		v = 0
	}

	return v, true
}

// Stdev returns the square root of Variance, with the same applicability.
func (a *Accumulator) Stdev() (float64, bool) {
	v, ok := a.Variance()
	if !ok {
		return 0, false
	}

	return math.Sqrt(v), true
}
