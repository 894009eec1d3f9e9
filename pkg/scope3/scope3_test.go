package scope3

import (
	"math"
	"testing"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

func TestComputeFuelEnergyRelated(t *testing.T) {
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

	result := Compute(facility, fs)

	wantGas := 2000 * 5.2 / 1000
	wantElec := 500000 * 0.05 * 0.215 / 1000
	want := wantGas + wantElec

	if math.Abs(result.Total-want) > 1e-9 {
		t.Fatalf("Total = %v, want %v", result.Total, want)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(result.Rows))
	}
}

func TestComputeCat3SkippedWithoutAutoCompute(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Energy: map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem{
			ghgtypes.FuelNaturalGas: {Quantity: 20000, Period: ghgtypes.PeriodAnnual, DataQuality: ghgtypes.DataQualityMeasured},
		},
	}
	result := Compute(facility, fs)
	if result.Total != 0 {
		t.Fatalf("Total = %v, want 0 when AutoComputeCat3 is false", result.Total)
	}
}

func TestComputeSpendBasedUsesSectorFactor(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Scope3: ghgtypes.Scope3Inputs{
			Spend: map[int][]ghgtypes.SpendEntry{
				1: {{Sector: "it_services", AnnualUSD: 100000}},
			},
		},
	}
	result := Compute(facility, fs)
	want := 100000 * 0.15 / 1000
	if math.Abs(result.Total-want) > 1e-9 {
		t.Fatalf("Total = %v, want %v", result.Total, want)
	}
	if result.Rows[0].Category != "cat1_purchased_goods_services" {
		t.Fatalf("Category = %q, want cat1_purchased_goods_services", result.Rows[0].Category)
	}
}

func TestComputeSpendBasedFallsBackToDefaultFactor(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Scope3: ghgtypes.Scope3Inputs{
			Spend: map[int][]ghgtypes.SpendEntry{
				1: {{Sector: "unmapped_sector", AnnualUSD: 100000}},
			},
		},
	}
	result := Compute(facility, fs)
	want := 100000 * 0.30 / 1000
	if math.Abs(result.Total-want) > 1e-9 {
		t.Fatalf("Total = %v, want %v (default 0.30 kg/USD)", result.Total, want)
	}
}

func TestComputeTransportUsesModeNormalization(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Scope3: ghgtypes.Scope3Inputs{
			Transport: []ghgtypes.TransportEntry{{Mode: "truck", TonMiles: 10000}},
		},
	}
	result := Compute(facility, fs)
	want := 10000 * 0.1616 / 1000
	if math.Abs(result.Total-want) > 1e-9 {
		t.Fatalf("Total = %v, want %v", result.Total, want)
	}
	if result.Rows[0].Subcategory != "truck_medium_heavy" {
		t.Fatalf("Subcategory = %q, want truck_medium_heavy", result.Rows[0].Subcategory)
	}
}

func TestComputeWasteRecyclingFlooredAtZero(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Waste: []ghgtypes.WasteLineItem{
			{WasteType: "paper", DisposalMethod: "recycling", AnnualTonnes: 10, DataQuality: ghgtypes.DataQualityMeasured},
		},
		Scope3: ghgtypes.Scope3Inputs{AutoComputeCat5: true},
	}
	result := Compute(facility, fs)
	if result.Total < 0 {
		t.Fatalf("Total = %v, want >= 0 (recycling credit floored at zero)", result.Total)
	}
}

func TestComputeWasteUnknownTypeFallsBackToMixedMSWLandfill(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Waste: []ghgtypes.WasteLineItem{
			{WasteType: "electronics", DisposalMethod: "special_handling", AnnualTonnes: 5, DataQuality: ghgtypes.DataQualityMeasured},
		},
		Scope3: ghgtypes.Scope3Inputs{AutoComputeCat5: true},
	}
	result := Compute(facility, fs)
	shortTons := 5 / 0.9072
	want := shortTons * 0.52
	if math.Abs(result.Total-want) > 1e-6 {
		t.Fatalf("Total = %v, want %v (mixed_msw/landfill fallback)", result.Total, want)
	}
}

func TestComputeCommutingScalesByHeadcountAndWorkingDays(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building:  ghgtypes.BuildingOffice,
		Occupancy: &ghgtypes.Occupancy{Employees: 100},
		Scope3: ghgtypes.Scope3Inputs{
			Commute: []ghgtypes.CommuteMode{{Mode: "drive_alone", Share: 0.8, OneWayMiles: 10}},
		},
	}
	result := Compute(facility, fs)
	want := 100 * 0.8 * 10 * 2 * 250 * 0.403 / 1000
	if math.Abs(result.Total-want) > 1e-6 {
		t.Fatalf("Total = %v, want %v", result.Total, want)
	}
}

func TestComputeCommutingSkippedWithoutOccupancy(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	facility := &ghgtypes.FacilityProfile{
		Building: ghgtypes.BuildingOffice,
		Scope3: ghgtypes.Scope3Inputs{
			Commute: []ghgtypes.CommuteMode{{Mode: "drive_alone", Share: 0.8, OneWayMiles: 10}},
		},
	}
	result := Compute(facility, fs)
	if result.Total != 0 {
		t.Fatalf("Total = %v, want 0 without reported Occupancy", result.Total)
	}
}
