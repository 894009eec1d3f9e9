package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/re-cinq/ghgcore/pkg/ghgerrors"
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

func minimalOfficeFacility() *ghgtypes.FacilityProfile {
	return &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingOffice,
		SquareFeet: 50000,
		State:      "NY",
		Energy: map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
			ghgtypes.FuelNaturalGas:  {Quantity: 20000, Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
			ghgtypes.FuelElectricity: {Quantity: 500000, Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
		},
		Refrigerants: []ghgtypes.RefrigerantLineItem{
			{Type: "R-410A", ChargeKg: 100, LeakRate: 0.10, DataQuality: ghgtypes.DataQualityMeasured},
		},
		Scope3: ghgtypes.Scope3Inputs{AutoComputeCat3: true},
	}
}

func TestComputeAllEndToEnd(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := minimalOfficeFacility()

	result, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}

	wantScope1 := 10.6337924 + 22.56
	wantScope2Location := 112.875
	wantScope3 := 15.775
	wantTotal := wantScope1 + wantScope2Location + wantScope3

	if math.Abs(result.Scope1.Total-wantScope1) > 1e-6 {
		t.Fatalf("Scope1.Total = %v, want %v", result.Scope1.Total, wantScope1)
	}
	if math.Abs(result.Scope2.Location.Total-wantScope2Location) > 1e-6 {
		t.Fatalf("Scope2.Location.Total = %v, want %v", result.Scope2.Location.Total, wantScope2Location)
	}
	if math.Abs(result.Scope3.Total-wantScope3) > 1e-6 {
		t.Fatalf("Scope3.Total = %v, want %v", result.Scope3.Total, wantScope3)
	}
	if math.Abs(result.Total-wantTotal) > 1e-6 {
		t.Fatalf("Total = %v, want %v", result.Total, wantTotal)
	}
}

func TestComputeAllBreakdownSumsMatchScopeTotals(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	result, err := ComputeAll(context.Background(), minimalOfficeFacility(), fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}

	var sum float64
	for _, r := range result.Breakdown {
		if r.Scope == ghgtypes.Scope2Market {
			continue // breakdown also carries the market-based rows, which double-count against Total (location-based)
		}
		sum += r.ValueTCO2e
	}
	if math.Abs(sum-result.Total) > 1e-6 {
		t.Fatalf("sum of location-based breakdown rows = %v, want Total %v", sum, result.Total)
	}
}

func TestComputeAllIsDeterministicAcrossCalls(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := minimalOfficeFacility()

	r1, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}
	r2, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}
	if r1.Total != r2.Total {
		t.Fatalf("repeated calls diverged: %v vs %v", r1.Total, r2.Total)
	}
	if r1.Scope1.Total != r2.Scope1.Total || r1.Scope2.Location.Total != r2.Scope2.Location.Total {
		t.Fatal("repeated calls produced different per-scope totals")
	}
}

func TestComputeAllDoesNotMutateCallerInputs(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := minimalOfficeFacility()
	before := facility.Energy[ghgtypes.FuelNaturalGas].Quantity

	if _, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions()); err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}

	if facility.Energy[ghgtypes.FuelNaturalGas].Quantity != before {
		t.Fatal("ComputeAll mutated the caller's FacilityProfile")
	}
}

func TestComputeAllRejectsNonPositiveSquareFeet(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := minimalOfficeFacility()
	facility.SquareFeet = 0

	_, err = ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions())
	if err == nil {
		t.Fatal("ComputeAll(squareFeet=0) returned nil error")
	}
	var verr *ghgerrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want a ValidationError", err)
	}
}

func TestComputeAllRejectsOutOfRangeLeakRate(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := minimalOfficeFacility()
	facility.Refrigerants[0].LeakRate = 1.5

	if _, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions()); err == nil {
		t.Fatal("ComputeAll(leakRate>1) returned nil error, want ValidationError")
	}
}

func TestComputeAllSkipsScope3WhenDisabled(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := minimalOfficeFacility()
	result, err := ComputeAll(context.Background(), facility, fs, ghgtypes.ComputeOptions{IncludeScope3: false, IncludeEstimation: true})
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}
	if result.Scope3.Total != 0 || len(result.Scope3.Rows) != 0 {
		t.Fatalf("Scope3 = %+v, want zero value when IncludeScope3 is false", result.Scope3)
	}
}

func TestComputeAllAppliesEstimatorWhenBasicMode(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingOffice,
		SquareFeet: 50000,
		InputMode:  ghgtypes.InputModeBasic,
	}
	result, err := ComputeAll(context.Background(), facility, fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}
	found := false
	for _, a := range result.Methodology.Assumptions {
		if a != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an estimator assumption note in Methodology.Assumptions")
	}
	if result.Total <= 0 {
		t.Fatalf("Total = %v, want > 0 once estimator fills in energy use", result.Total)
	}
}

func TestComputeAllDataQualityScoreInRange(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	result, err := ComputeAll(context.Background(), minimalOfficeFacility(), fs, ghgtypes.DefaultComputeOptions())
	if err != nil {
		t.Fatalf("ComputeAll() error: %v", err)
	}
	if result.DataQualityScore < 0 || result.DataQualityScore > 100 {
		t.Fatalf("DataQualityScore = %v, want in [0,100]", result.DataQualityScore)
	}
}
