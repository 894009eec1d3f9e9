package engine

import "github.com/re-cinq/ghgcore/pkg/ghgtypes"

// PercentileFromQuartiles computes the facility's percentile position
// against a building type's kg CO2e/sqft quartile distribution via
// piecewise-linear interpolation between (0, p25), (p25, median),
// (median, p75), and (p75, p75+delta) with delta = p75-median,
// saturating at 100.
func PercentileFromQuartiles(value float64, q ghgtypes.BenchmarkQuartiles) float64 {
	delta := q.P75 - q.Median

	switch {
	case value <= 0:
		return 0
	case value <= q.P25:
		return interpolate(value, 0, q.P25, 0, 25)
	case value <= q.Median:
		return interpolate(value, q.P25, q.Median, 25, 50)
	case value <= q.P75:
		return interpolate(value, q.Median, q.P75, 50, 75)
	case value <= q.P75+delta:
		return interpolate(value, q.P75, q.P75+delta, 75, 100)
	default:
		return 100
	}
}

func interpolate(value, xLo, xHi, yLo, yHi float64) float64 {
	if xHi == xLo {
		return yHi
	}
	t := (value - xLo) / (xHi - xLo)
	return yLo + t*(yHi-yLo)
}

// Classify derives the benchmark classification strictly from the
// percentile thresholds {25, 50, 75}.
func Classify(percentile float64) ghgtypes.BenchmarkClassification {
	switch {
	case percentile <= 25:
		return ghgtypes.ClassificationLow
	case percentile <= 50:
		return ghgtypes.ClassificationAverage
	case percentile <= 75:
		return ghgtypes.ClassificationHigh
	default:
		return ghgtypes.ClassificationVeryHigh
	}
}
