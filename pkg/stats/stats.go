// Package stats implements the descriptive statistics Monte Carlo output
// needs (C10): mean, median, Bessel-corrected standard deviation,
// Excel-INC-style percentile interpolation, histogram binning, and the
// running-mean convergence diagnostic.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the median of values via a sorted copy.
func Median(values []float64) float64 {
	sorted := sortedCopy(values)
	return Percentile(sorted, 0.5)
}

// StdDev returns the Bessel-corrected (sample) standard deviation. Returns
// 0 for fewer than 2 values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Percentile returns the pth percentile (p in [0,1]) of an ALREADY-SORTED
// slice using the Excel PERCENTILE.INC linear-interpolation rule:
// idx = p*(n-1); result = v[floor(idx)]*(1-w) + v[ceil(idx)]*w.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	idx := p * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	w := idx - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}

// Histogram is the bin edges (len = bins+1) and per-bin counts (len = bins)
// for a sample.
type Histogram struct {
	BinEdges []float64
	Counts   []int
}

// BuildHistogram bins values into the requested number of bins spanning
// [min(values), max(values)]. If every value is equal, the range is
// treated as 1 to avoid a division by zero. A value exactly at the maximum
// is assigned to the last bin.
func BuildHistogram(values []float64, bins int) Histogram {
	if bins <= 0 {
		bins = 1
	}
	edges := make([]float64, bins+1)
	counts := make([]int, bins)
	if len(values) == 0 {
		return Histogram{BinEdges: edges, Counts: counts}
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}

	for i := 0; i <= bins; i++ {
		edges[i] = minV + rangeV*float64(i)/float64(bins)
	}

	for _, v := range values {
		idx := int((v - minV) / rangeV * float64(bins))
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	return Histogram{BinEdges: edges, Counts: counts}
}

// ConvergenceDiagnostic computes stdDev(runningMeans)/mean(runningMeans)
// over the last 10% of runs. Returns 1.0 when runs < 100, per the spec's
// documented floor for under-powered runs.
func ConvergenceDiagnostic(values []float64) float64 {
	n := len(values)
	if n < 100 {
		return 1.0
	}

	runningMeans := make([]float64, n)
	var sum float64
	for i, v := range values {
		sum += v
		runningMeans[i] = sum / float64(i+1)
	}

	tailStart := n - n/10
	if tailStart < 0 {
		tailStart = 0
	}
	tail := runningMeans[tailStart:]

	mean := Mean(tail)
	if mean == 0 {
		return 0
	}
	return StdDev(tail) / mean
}
