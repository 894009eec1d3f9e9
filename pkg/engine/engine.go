// Package engine orchestrates the scope calculators into the public
// computeAll entry point (C7): estimator fallback, Scope 1/2/3, intensity,
// benchmark percentile, analytical uncertainty, data-quality score, and the
// methodology provenance record.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/re-cinq/ghgcore/pkg/estimator"
	"github.com/re-cinq/ghgcore/pkg/ghgerrors"
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/log"
	"github.com/re-cinq/ghgcore/pkg/scope1"
	"github.com/re-cinq/ghgcore/pkg/scope2"
	"github.com/re-cinq/ghgcore/pkg/scope3"
)

// ComputeAll is the pure, deterministic entry point named in §6:
// computeAll(facility, factorSet, options) -> EmissionResult. Repeated
// calls with equal inputs yield equal results (invariant 7); the only
// field that varies between calls is Methodology.Timestamp.
func ComputeAll(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, options ghgtypes.ComputeOptions) (*ghgtypes.EmissionResult, error) {
	if err := validate(facility); err != nil {
		return nil, err
	}
	logger := log.FromContext(ctx)

	working := facility
	usedEstimator := false
	if estimator.ShouldEstimate(facility, options.IncludeEstimation) {
		working = estimator.Apply(fs, facility)
		usedEstimator = true
	}

	s1 := scope1.Compute(ctx, working, fs)
	s2Location := scope2.Location(working, fs)
	s2Market := scope2.Market(working, fs)

	var s3 ghgtypes.ScopeResult
	if options.IncludeScope3 {
		s3 = scope3.Compute(working, fs)
	}

	total := s1.Scope.Total + s2Location.Total + s3.Total
	totalMarket := s1.Scope.Total + s2Market.Total + s3.Total

	var breakdown []ghgtypes.BreakdownRow
	breakdown = append(breakdown, s1.Scope.Rows...)
	breakdown = append(breakdown, s2Location.Rows...)
	breakdown = append(breakdown, s2Market.Rows...)
	breakdown = append(breakdown, s3.Rows...)

	intensity := ghgtypes.Intensity{}
	if working.SquareFeet > 0 {
		intensity.PerSqFt = total / working.SquareFeet
	}
	if working.Occupancy != nil && working.Occupancy.Employees > 0 {
		perEmployee := total / working.Occupancy.Employees
		intensity.PerEmployee = &perEmployee
	}

	benchmark := computeBenchmark(working, fs, total)

	// Both location- and market-based breakdowns feed the uncertainty
	// band for their respective total; the data-quality score is computed
	// from the location-based rows only, and the location-based rows are
	// the ones reported as the primary EmissionResult fields per the
	// spec's worked examples.
	locationRows := append(append([]ghgtypes.BreakdownRow{}, s1.Scope.Rows...), s2Location.Rows...)
	locationRows = append(locationRows, s3.Rows...)
	marketRows := append(append([]ghgtypes.BreakdownRow{}, s1.Scope.Rows...), s2Market.Rows...)
	marketRows = append(marketRows, s3.Rows...)

	dqScore := valueWeightedQualityScore(locationRows)
	uncertaintyLocation := analyticalUncertainty(total, locationRows)
	uncertaintyMarket := analyticalUncertainty(totalMarket, marketRows)

	methodology := buildMethodology(fs, working, breakdown, s1.DataGaps, usedEstimator)

	logger.Debug("computeAll complete", "total", total, "total_market", totalMarket, "dq_score", dqScore)

	return &ghgtypes.EmissionResult{
		Scope1:              s1.Scope,
		Scope2:              ghgtypes.Scope2Result{Location: s2Location, Market: s2Market},
		Scope3:              s3,
		Total:               total,
		TotalMarketBased:    totalMarket,
		Breakdown:           breakdown,
		Intensity:           intensity,
		Benchmark:           benchmark,
		UncertaintyLocation: uncertaintyLocation,
		UncertaintyMarket:   uncertaintyMarket,
		DataQualityScore:    dqScore,
		Methodology:         methodology,
	}, nil
}

func computeBenchmark(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, total float64) ghgtypes.Benchmark {
	if facility.SquareFeet <= 0 {
		return ghgtypes.Benchmark{}
	}
	kgPerSqFt := total * 1000 / facility.SquareFeet
	bench, ok := fs.Benchmarks[facility.Building]
	if !ok {
		return ghgtypes.Benchmark{KgCO2ePerSqFt: kgPerSqFt}
	}
	percentile := PercentileFromQuartiles(kgPerSqFt, bench.KgCO2ePerSqFt)
	return ghgtypes.Benchmark{
		KgCO2ePerSqFt:  kgPerSqFt,
		Percentile:     percentile,
		Classification: Classify(percentile),
	}
}

func buildMethodology(fs *ghgtypes.FactorSet, facility *ghgtypes.FacilityProfile, breakdown []ghgtypes.BreakdownRow, scope1Gaps []string, usedEstimator bool) ghgtypes.Methodology {
	sourceSet := map[string]struct{}{}
	for _, r := range breakdown {
		sourceSet[r.Source] = struct{}{}
	}
	sources := make([]string, 0, len(sourceSet))
	for s := range sourceSet {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	var assumptions []string
	var dataGaps []string
	dataGaps = append(dataGaps, scope1Gaps...)

	if usedEstimator {
		assumptions = append(assumptions, "energy consumption estimated from CBECS building-type benchmarks and ASHRAE climate-zone adjustment")
	}
	if _, ok := facility.Energy[ghgtypes.FuelElectricity]; !ok {
		dataGaps = append(dataGaps, "no electricity line item reported")
	}

	return ghgtypes.Methodology{
		Versions:    fs.Version,
		Timestamp:   time.Now().UTC(),
		Sources:     sources,
		Assumptions: assumptions,
		DataGaps:    dataGaps,
	}
}

func validate(facility *ghgtypes.FacilityProfile) error {
	if facility == nil {
		return ghgerrors.NewValidationError("facility", nil, "facility profile is required")
	}
	if facility.SquareFeet <= 0 {
		return ghgerrors.NewValidationError("squareFeet", facility.SquareFeet, "must be > 0")
	}
	for fuel, item := range facility.Energy {
		if item.Quantity < 0 {
			return ghgerrors.NewValidationError("energy."+string(fuel)+".quantity", item.Quantity, "must be >= 0")
		}
	}
	for _, r := range facility.Refrigerants {
		if r.ChargeKg < 0 {
			return ghgerrors.NewValidationError("refrigerants.charge_kg", r.ChargeKg, "must be >= 0")
		}
		if r.LeakRate < 0 || r.LeakRate > 1 {
			return ghgerrors.NewValidationError("refrigerants.leak_rate", r.LeakRate, "must be in [0,1]")
		}
	}
	for _, f := range facility.Fleet {
		if f.Count < 0 || f.AnnualMilesPerVehicle < 0 {
			return ghgerrors.NewValidationError("fleet", f, "count and annualMilesPerVehicle must be >= 0")
		}
	}
	for _, w := range facility.Waste {
		if w.AnnualTonnes < 0 {
			return ghgerrors.NewValidationError("waste.annualTonnes", w.AnnualTonnes, "must be >= 0")
		}
	}
	for _, w := range facility.Water {
		if w.AnnualGallons < 0 {
			return ghgerrors.NewValidationError("water.annualGallons", w.AnnualGallons, "must be >= 0")
		}
	}
	return nil
}
