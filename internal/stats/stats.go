// Package stats provides the order-statistic helpers used by the cleaning
// and outlier stages.
package stats

import (
	"math"
	"sort"
)

// Median returns the middle order statistic of x, averaging the two middle
// values for even lengths. Returns NaN for an empty slice.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Quantile computes the q-th quantile of x (0 <= q <= 1) using linear
// interpolation between adjacent order statistics. Returns NaN for an empty
// slice.
func Quantile(x []float64, q float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return x[0]
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
