package estimator

import (
	"math"
	"testing"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

func TestShouldEstimateBasicMode(t *testing.T) {
	facility := &ghgtypes.FacilityProfile{InputMode: ghgtypes.InputModeBasic}
	if !ShouldEstimate(facility, true) {
		t.Fatal("ShouldEstimate(basic mode) = false, want true")
	}
}

func TestShouldEstimateRespectsIncludeFlag(t *testing.T) {
	facility := &ghgtypes.FacilityProfile{InputMode: ghgtypes.InputModeBasic}
	if ShouldEstimate(facility, false) {
		t.Fatal("ShouldEstimate(includeEstimation=false) = true, want false")
	}
}

func TestShouldEstimateMissingElectricity(t *testing.T) {
	facility := &ghgtypes.FacilityProfile{InputMode: ghgtypes.InputModeAdvanced}
	if !ShouldEstimate(facility, true) {
		t.Fatal("ShouldEstimate(no electricity reported) = false, want true")
	}
}

func TestShouldEstimateFalseWhenElectricityReported(t *testing.T) {
	facility := &ghgtypes.FacilityProfile{
		InputMode: ghgtypes.InputModeAdvanced,
		Energy: map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
			ghgtypes.FuelElectricity: {Quantity: 1000, Period: ghgtypes.PeriodAnnual},
		},
	}
	if ShouldEstimate(facility, true) {
		t.Fatal("ShouldEstimate(electricity reported) = true, want false")
	}
}

func TestClimateAdjustmentTXRatio(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	got := ClimateAdjustment(fs, "2A")
	want := 4500.0 / 5500.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ClimateAdjustment(2A) = %v, want %v", got, want)
	}
}

func TestClimateAdjustmentUnknownZoneIsIdentity(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	if got := ClimateAdjustment(fs, "not-a-zone"); got != 1.0 {
		t.Fatalf("ClimateAdjustment(unknown) = %v, want 1.0", got)
	}
}

func TestResolveClimateZonePrefersExplicit(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{ClimateZone: "6A", State: "TX"}
	if got := ResolveClimateZone(fs, facility); got != "6A" {
		t.Fatalf("ResolveClimateZone = %q, want 6A (explicit wins over state default)", got)
	}
}

func TestResolveClimateZoneFallsBackToState(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{State: "TX"}
	if got := ResolveClimateZone(fs, facility); got != "2A" {
		t.Fatalf("ResolveClimateZone = %q, want 2A", got)
	}
}

func TestApplyWarehouseTXFillsEnergyFromBenchmark(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingWarehouse,
		SquareFeet: 10000,
		State:      "TX",
		InputMode:  ghgtypes.InputModeBasic,
	}

	filled := Apply(fs, facility)

	gas, ok := filled.Energy[ghgtypes.FuelNaturalGas]
	if !ok {
		t.Fatal("missing naturalGas line item after Apply")
	}
	if gas.Quantity != 1260 {
		t.Fatalf("naturalGas.Quantity = %v, want 1260 therms", gas.Quantity)
	}
	if gas.DataQuality != ghgtypes.DataQualityEstimated {
		t.Fatalf("naturalGas.DataQuality = %q, want estimated", gas.DataQuality)
	}

	elec, ok := filled.Energy[ghgtypes.FuelElectricity]
	if !ok {
		t.Fatal("missing electricity line item after Apply")
	}
	if elec.Quantity != 55393 {
		t.Fatalf("electricity.Quantity = %v, want 55393 kWh", elec.Quantity)
	}
}

func TestApplyNeverMutatesCaller(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingOffice,
		SquareFeet: 10000,
		InputMode:  ghgtypes.InputModeBasic,
	}

	_ = Apply(fs, facility)

	if facility.Energy != nil {
		t.Fatal("Apply mutated the caller's FacilityProfile.Energy")
	}
}

func TestApplyDoesNotOverwriteReportedFuel(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingOffice,
		SquareFeet: 10000,
		InputMode:  ghgtypes.InputModeBasic,
		Energy: map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
			ghgtypes.FuelElectricity: {Quantity: 999, Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
		},
	}
	filled := Apply(fs, facility)
	if filled.Energy[ghgtypes.FuelElectricity].Quantity != 999 {
		t.Fatalf("Apply overwrote a reported electricity value: got %v", filled.Energy[ghgtypes.FuelElectricity].Quantity)
	}
}

func TestApplyUnknownBuildingTypeUsesOfficeDefault(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:   ghgtypes.BuildingType("not_a_real_type"),
		SquareFeet: 10000,
		InputMode:  ghgtypes.InputModeBasic,
	}
	filled := Apply(fs, facility)
	if _, ok := filled.Energy[ghgtypes.FuelElectricity]; !ok {
		t.Fatal("expected office default benchmark to still fill electricity")
	}
}
