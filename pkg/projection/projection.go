// Package projection interpolates the sparse EIA national grid emission
// factor table to an arbitrary year via a cubic spline, falling back to the
// documented two-level constant outside the table's domain. This repurposes
// the teacher's gospline-based CPU-utilization-to-wattage curve (C13) for a
// grid-EF-vs-year curve.
package projection

import (
	"sort"

	"github.com/cnkei/gospline"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

// GridEF returns the projected national grid emission factor (kg CO2e/kWh)
// for year, spline-interpolated across fs.GridProjectionByYear's anchor
// points. Years outside the anchor domain fall back to the table's
// documented year (2035) and, failing that, a hard-coded constant.
func GridEF(fs *ghgtypes.FactorSet, year int) float64 {
	if len(fs.GridProjectionByYear) == 0 {
		return fallbackGridEF()
	}

	years := make([]int, 0, len(fs.GridProjectionByYear))
	for y := range fs.GridProjectionByYear {
		years = append(years, y)
	}
	sort.Ints(years)

	minYear, maxYear := years[0], years[len(years)-1]
	if year < minYear || year > maxYear {
		if v, ok := fs.GridProjectionByYear[2035]; ok {
			return v
		}
		return fallbackGridEF()
	}

	if v, ok := fs.GridProjectionByYear[year]; ok {
		return v
	}

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
		ys[i] = fs.GridProjectionByYear[y]
	}

	spline := gospline.NewCubicSpline(xs, ys)
	return spline.At(float64(year))
}

// fallbackGridEF is the ultimate fallback constant when the embedded table
// cannot supply even the documented 2035 anchor.
func fallbackGridEF() float64 {
	_, ultimate, err := registry.GridProjectionFallback()
	if err != nil {
		return 0.224
	}
	return ultimate
}
