// Package montecarlo implements the seeded stochastic simulator (C11): it
// perturbs a facility profile and factor set per run, invokes the engine,
// and aggregates the resulting distributions.
package montecarlo

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/re-cinq/ghgcore/pkg/config"
	"github.com/re-cinq/ghgcore/pkg/engine"
	"github.com/re-cinq/ghgcore/pkg/ghgerrors"
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/rng"
	"github.com/re-cinq/ghgcore/pkg/stats"
	"github.com/re-cinq/ghgcore/pkg/telemetry"
	"github.com/re-cinq/ghgcore/pkg/uncertainty"
)

// minRuns is the floor below which the empirical distribution is too thin
// to be meaningful; runMonteCarlo refuses to simulate fewer.
const minRuns = 100

// canonicalFuelOrder fixes the iteration order for energy line items and
// stationary factors. Go map iteration is randomized, so a documented,
// fixed key order is what makes a run reproducible across processes; any
// fuel key not in this list (a caller-supplied extension) is appended in
// sorted order after it.
var canonicalFuelOrder = []ghgtypes.FuelKey{
	ghgtypes.FuelElectricity,
	ghgtypes.FuelNaturalGas,
	ghgtypes.FuelDiesel,
	ghgtypes.FuelOil2,
	ghgtypes.FuelOil6,
	ghgtypes.FuelPropane,
	ghgtypes.FuelKerosene,
}

// Run executes the Monte Carlo simulation described in §4.10: N perturbed
// (facility, factorSet) pairs are built from a single RNG stream per run in
// the canonical order (energy, refrigerants, fleet, waste, water,
// stationary factors, grid subregions), each fed through engine.ComputeAll,
// and the per-run totals are aggregated into DistributionSummary statistics.
//
// cfg may be nil, in which case config.MonteCarloDefaults() is used.
func Run(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, cfg *ghgtypes.MonteCarloConfig) (*ghgtypes.SimulationResult, error) {
	resolved := resolveConfig(cfg)
	if resolved.Runs < minRuns {
		return nil, ghgerrors.NewMonteCarloDegenerateError(resolved.Runs, minRuns)
	}

	var result *ghgtypes.SimulationResult
	err := telemetry.Span(ctx, "runMonteCarlo", []attribute.KeyValue{
		attribute.Int("ghgcore.runs", resolved.Runs),
		attribute.Int64("ghgcore.seed", resolved.Seed),
	}, func(ctx context.Context) error {
		var simErr error
		result, simErr = simulate(ctx, facility, fs, resolved)
		return simErr
	})
	return result, err
}

func resolveConfig(cfg *ghgtypes.MonteCarloConfig) ghgtypes.MonteCarloConfig {
	if cfg != nil {
		return *cfg
	}
	return config.MonteCarloDefaults()
}

func simulate(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, cfg ghgtypes.MonteCarloConfig) (*ghgtypes.SimulationResult, error) {
	totals := make([]float64, 0, cfg.Runs)
	totalsMarket := make([]float64, 0, cfg.Runs)
	scope1s := make([]float64, 0, cfg.Runs)
	scope2Locations := make([]float64, 0, cfg.Runs)
	scope2Markets := make([]float64, 0, cfg.Runs)
	scope3s := make([]float64, 0, cfg.Runs)
	byCategory := map[string][]float64{}

	opts := ghgtypes.ComputeOptions{IncludeScope3: true, IncludeEstimation: true}

	for run := 0; run < cfg.Runs; run++ {
		src := rng.New(uint32(cfg.Seed) + uint32(run))

		perturbedFacility := perturbFacility(facility, src)
		perturbedFactors := perturbFactorSet(fs, src)

		res, err := engine.ComputeAll(ctx, perturbedFacility, perturbedFactors, opts)
		if err != nil {
			return nil, err
		}

		totals = append(totals, res.Total)
		totalsMarket = append(totalsMarket, res.TotalMarketBased)
		scope1s = append(scope1s, res.Scope1.Total)
		scope2Locations = append(scope2Locations, res.Scope2.Location.Total)
		scope2Markets = append(scope2Markets, res.Scope2.Market.Total)
		scope3s = append(scope3s, res.Scope3.Total)

		for _, row := range res.Breakdown {
			byCategory[row.Category] = append(byCategory[row.Category], row.ValueTCO2e)
		}
	}

	categories := make([]ghgtypes.CategorySummary, 0, len(byCategory))
	categoryNames := make([]string, 0, len(byCategory))
	for name := range byCategory {
		categoryNames = append(categoryNames, name)
	}
	sort.Strings(categoryNames)
	for _, name := range categoryNames {
		values := byCategory[name]
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		categories = append(categories, ghgtypes.CategorySummary{
			Category:  name,
			Mean:      stats.Mean(values),
			CI95Lower: stats.Percentile(sorted, 0.025),
			CI95Upper: stats.Percentile(sorted, 0.975),
		})
	}

	return &ghgtypes.SimulationResult{
		Total:                 summarize(totals, cfg.HistogramBins),
		TotalMarketBased:      summarize(totalsMarket, cfg.HistogramBins),
		Scope1:                summarize(scope1s, cfg.HistogramBins),
		Scope2Location:        summarize(scope2Locations, cfg.HistogramBins),
		Scope2Market:          summarize(scope2Markets, cfg.HistogramBins),
		Scope3:                summarize(scope3s, cfg.HistogramBins),
		Categories:            categories,
		ConvergenceDiagnostic: stats.ConvergenceDiagnostic(totals),
		Runs:                  cfg.Runs,
		Seed:                  cfg.Seed,
	}, nil
}

func summarize(values []float64, bins int) ghgtypes.DistributionSummary {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	minV, maxV := 0.0, 0.0
	if len(sorted) > 0 {
		minV, maxV = sorted[0], sorted[len(sorted)-1]
	}

	hist := stats.BuildHistogram(values, bins)

	return ghgtypes.DistributionSummary{
		Mean:      stats.Mean(values),
		Median:    stats.Percentile(sorted, 0.5),
		StdDev:    stats.StdDev(values),
		Min:       minV,
		Max:       maxV,
		P5:        stats.Percentile(sorted, 0.05),
		P10:       stats.Percentile(sorted, 0.10),
		P25:       stats.Percentile(sorted, 0.25),
		P75:       stats.Percentile(sorted, 0.75),
		P90:       stats.Percentile(sorted, 0.90),
		P95:       stats.Percentile(sorted, 0.95),
		CI95Lower: stats.Percentile(sorted, 0.025),
		CI95Upper: stats.Percentile(sorted, 0.975),
		Histogram: ghgtypes.Histogram{BinEdges: hist.BinEdges, Counts: hist.Counts},
	}
}

// perturbFacility clones facility and perturbs its stochastic inputs in the
// canonical order: energy, refrigerants (input order), fleet, waste,
// water.
func perturbFacility(facility *ghgtypes.FacilityProfile, src *rng.Source) *ghgtypes.FacilityProfile {
	clone := facility.Clone()

	for _, fuel := range orderedFuelKeys(clone.Energy) {
		item := clone.Energy[fuel]
		if item.Quantity <= 0 {
			continue
		}
		paramType := uncertainty.EnergyParameterType(item.DataQuality == ghgtypes.DataQualityMeasured)
		item.Quantity = uncertainty.Perturb(item.Quantity, paramType, src)
		clone.Energy[fuel] = item
	}

	for i, r := range clone.Refrigerants {
		if r.ChargeKg > 0 {
			r.ChargeKg = uncertainty.Perturb(r.ChargeKg, uncertainty.RefrigerantCharge, src)
		}
		if r.LeakRate > 0 {
			r.LeakRate = uncertainty.Perturb(r.LeakRate, uncertainty.RefrigerantLeakRate, src)
		}
		clone.Refrigerants[i] = r
	}

	for i, f := range clone.Fleet {
		if f.AnnualMilesPerVehicle > 0 {
			f.AnnualMilesPerVehicle = uncertainty.Perturb(f.AnnualMilesPerVehicle, uncertainty.FleetMileage, src)
		}
		if f.FuelEfficiency != nil && *f.FuelEfficiency > 0 {
			mpg := uncertainty.Perturb(*f.FuelEfficiency, uncertainty.FleetFuelEconomy, src)
			f.FuelEfficiency = &mpg
		}
		clone.Fleet[i] = f
	}

	for i, w := range clone.Waste {
		if w.AnnualTonnes > 0 {
			w.AnnualTonnes = uncertainty.Perturb(w.AnnualTonnes, uncertainty.WasteQuantity, src)
		}
		clone.Waste[i] = w
	}

	for i, w := range clone.Water {
		if w.AnnualGallons > 0 {
			w.AnnualGallons = uncertainty.Perturb(w.AnnualGallons, uncertainty.WaterQuantity, src)
		}
		clone.Water[i] = w
	}

	return clone
}

// perturbFactorSet clones fs and perturbs the stochastic reference tables
// in the canonical order: stationary factors by fuel-key order, then grid
// subregions. GWP is fixed per §4.9 and is never perturbed.
func perturbFactorSet(fs *ghgtypes.FactorSet, src *rng.Source) *ghgtypes.FactorSet {
	clone := fs.Clone()

	for _, fuel := range orderedFuelKeys(toFuelSet(clone.Stationary)) {
		factor := clone.Stationary[fuel]
		factor.CO2KgPerUnit = uncertainty.Perturb(factor.CO2KgPerUnit, uncertainty.StationaryEF, src)
		clone.Stationary[fuel] = factor
	}

	for _, sub := range orderedStringKeys(clone.GridSubregions) {
		factor := clone.GridSubregions[sub]
		factor.KgCO2ePerKWh = uncertainty.Perturb(factor.KgCO2ePerKWh, uncertainty.GridEF, src)
		clone.GridSubregions[sub] = factor
	}

	return clone
}

// orderedFuelKeys returns the keys present in m in canonical fuel order,
// with any caller-extended keys appended in sorted order.
func orderedFuelKeys[V any](m map[ghgtypes.FuelKey]V) []ghgtypes.FuelKey {
	seen := map[ghgtypes.FuelKey]bool{}
	var ordered []ghgtypes.FuelKey
	for _, fuel := range canonicalFuelOrder {
		if _, ok := m[fuel]; ok {
			ordered = append(ordered, fuel)
			seen[fuel] = true
		}
	}
	var extra []string
	for fuel := range m {
		if !seen[fuel] {
			extra = append(extra, string(fuel))
		}
	}
	sort.Strings(extra)
	for _, fuel := range extra {
		ordered = append(ordered, ghgtypes.FuelKey(fuel))
	}
	return ordered
}

func toFuelSet(m map[ghgtypes.FuelKey]ghgtypes.StationaryFactor) map[ghgtypes.FuelKey]ghgtypes.StationaryFactor {
	return m
}

// orderedStringKeys returns m's keys sorted lexically. Go maps carry no
// insertion order, so this stands in for the "insertion order" the spec
// describes; see DESIGN.md for the rationale.
func orderedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
