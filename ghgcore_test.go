package ghgcore

import (
	"context"
	"testing"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

func TestEndToEndComputeMonteCarloAndScenario(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingOffice,
		SquareFeet: 50000,
		State:      "NY",
		Energy: map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
			ghgtypes.FuelNaturalGas:  {Quantity: 20000, Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
			ghgtypes.FuelElectricity: {Quantity: 500000, Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
		},
		Scope3: ghgtypes.Scope3Inputs{AutoComputeCat3: true},
	}

	result, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}
	if result.Total <= 0 {
		t.Fatalf("Total = %v, want > 0", result.Total)
	}

	sim, err := RunMonteCarlo(context.Background(), facility, fs, &ghgtypes.MonteCarloConfig{Runs: 150, Seed: 42, HistogramBins: 20})
	if err != nil {
		t.Fatalf("RunMonteCarlo() error: %v", err)
	}
	if sim.Total.Mean <= 0 {
		t.Fatalf("sim.Total.Mean = %v, want > 0", sim.Total.Mean)
	}

	interventions := []ghgtypes.Intervention{
		{Type: ghgtypes.InterventionRenewableSwitch, Name: "renewable PPA", Params: map[string]float64{"renewablePct": 0.5}},
	}
	scenarioResult, err := EvaluateScenario(context.Background(), "renewable-50pct", facility, fs, interventions, result, 2026)
	if err != nil {
		t.Fatalf("EvaluateScenario() error: %v", err)
	}
	if scenarioResult.TotalReductionTCO2e <= 0 {
		t.Fatalf("TotalReductionTCO2e = %v, want > 0", scenarioResult.TotalReductionTCO2e)
	}
	if scenarioResult.ProjectedEmissionsTCO2e >= result.Total {
		t.Fatalf("ProjectedEmissionsTCO2e = %v, want < baseline total %v", scenarioResult.ProjectedEmissionsTCO2e, result.Total)
	}
}

func TestLoadFactorSetMatchesRegistryLoad(t *testing.T) {
	want, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	got, err := LoadFactorSet(context.Background())
	if err != nil {
		t.Fatalf("LoadFactorSet() error: %v", err)
	}
	if got.Version != want.Version {
		t.Fatalf("LoadFactorSet().Version = %q, want %q", got.Version, want.Version)
	}
}

func TestProjectedGridEFExposesProjectionPackage(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	if got := ProjectedGridEF(fs, 2030); got != 0.295 {
		t.Fatalf("ProjectedGridEF(2030) = %v, want 0.295", got)
	}
}
