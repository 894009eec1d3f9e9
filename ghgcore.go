// Package ghgcore is the facade over the three public entry points named in
// the external interface contract: computeAll, runMonteCarlo, and
// evaluateScenario. It holds no state of its own — every call is a pure
// dispatch into the component packages under pkg/.
package ghgcore

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/re-cinq/ghgcore/pkg/engine"
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/montecarlo"
	"github.com/re-cinq/ghgcore/pkg/projection"
	"github.com/re-cinq/ghgcore/pkg/registry"
	"github.com/re-cinq/ghgcore/pkg/scenario"
	"github.com/re-cinq/ghgcore/pkg/scope2"
	"github.com/re-cinq/ghgcore/pkg/telemetry"
)

// LoadFactorSet returns the embedded GHG Protocol reference-data bundle
// (EPA/eGRID/AR6/CBECS/ASHRAE/EIA tables) this binary carries, memoized
// behind pkg/registry's bigcache-backed cache so repeated calls within a
// process skip re-parsing the embedded JSON after the first. Every call
// still returns an independently decoded FactorSet the caller is free to
// pass into ComputeAll/RunMonteCarlo and mutate or clone without aliasing.
func LoadFactorSet(ctx context.Context) (*ghgtypes.FactorSet, error) {
	return registry.LoadDefault(ctx)
}

// ComputeAll computes a single-year emissions inventory for facility under
// fs. A zero-valued ComputeOptions is accepted and turns off both Scope 3
// and the estimator fallback; ghgtypes.DefaultComputeOptions() gives the
// documented defaults (includeScope3=true, includeEstimation=true).
func ComputeAll(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, options ghgtypes.ComputeOptions) (*ghgtypes.EmissionResult, error) {
	var result *ghgtypes.EmissionResult
	err := telemetry.Span(ctx, "computeAll", []attribute.KeyValue{
		attribute.Bool("ghgcore.include_scope3", options.IncludeScope3),
		attribute.Bool("ghgcore.include_estimation", options.IncludeEstimation),
	}, func(ctx context.Context) error {
		var computeErr error
		result, computeErr = engine.ComputeAll(ctx, facility, fs, options)
		return computeErr
	})
	return result, err
}

// RunMonteCarlo propagates parameter uncertainty through computeAll across
// cfg.Runs perturbed samples. cfg may be nil to use the documented defaults
// (runs=1000, seed=42, confidenceLevel=0.95, bins=50).
func RunMonteCarlo(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, cfg *ghgtypes.MonteCarloConfig) (*ghgtypes.SimulationResult, error) {
	return montecarlo.Run(ctx, facility, fs, cfg)
}

// EvaluateScenario scores a named set of decarbonization interventions
// against a baseline computeAll result: per-intervention reduction/capex/
// opex deltas, a 10-year grid-decarbonization trajectory, and the
// resulting NPV/IRR/payback financial summary. currentYear anchors the
// trajectory's first point. If interventions is empty, name is resolved
// against the embedded scenario presets (pkg/scenario.ResolvePreset,
// e.g. "aggressive-decarb", "solar-only") before falling back to an empty
// scenario.
func EvaluateScenario(ctx context.Context, name string, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet, interventions []ghgtypes.Intervention, baseline *ghgtypes.EmissionResult, currentYear int) (*ghgtypes.ScenarioResult, error) {
	resolved := scope2.ResolveLocationGrid(fs, facility)
	scenarioBaseline := scenario.BaselineFromResult(baseline, resolved.Factor.KgCO2ePerKWh)
	return scenario.Evaluate(ctx, name, fs, facility, interventions, scenarioBaseline, currentYear)
}

// ProjectedGridEF exposes the national grid emission factor projection for
// a given year, for callers that want to chart it outside a scenario.
func ProjectedGridEF(fs *ghgtypes.FactorSet, year int) float64 {
	return projection.GridEF(fs, year)
}
