// Package estimator implements the CBECS/ASHRAE benchmark fallback (C3):
// imputing missing energy consumption from building type, climate zone,
// and square footage when a facility's energy inputs are absent or the
// caller is in basic input mode.
package estimator

import (
	"math"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/ghgunits"
)

const (
	baselineClimateZone = "4A"
	minClimateAdjustment = 0.5
	maxClimateAdjustment = 2.5

	// office defaults used when no benchmark row exists for the
	// facility's building type: 14.6 kWh/sqft electricity and 0.18
	// therms/sqft natural gas, expressed as an equivalent EUI/fuel-split
	// pair so they flow through the same total-EUI pipeline as every
	// other building type.
	officeDefaultElectricityKWhPerSqFt = 14.6
	officeDefaultGasThermsPerSqFt      = 0.18
)

// officeDefaultBenchmark is derived once from the two office default
// constants above: EUI = 14.6 kWh/sqft * 3.412 kBtu/kWh + 0.18 therms/sqft
// * 100 kBtu/therm, with the fuel split implied by each fuel's share of
// that total.
func officeDefaultBenchmark() ghgtypes.BuildingBenchmark {
	electricityKBtu := officeDefaultElectricityKWhPerSqFt * 3.412
	gasKBtu := officeDefaultGasThermsPerSqFt * 100
	total := electricityKBtu + gasKBtu
	return ghgtypes.BuildingBenchmark{
		BuildingType:   ghgtypes.BuildingOffice,
		EUIKBtuPerSqFt: ghgtypes.BenchmarkQuartiles{P25: total * 0.8, Median: total, P75: total * 1.3},
		FuelSplit: map[ghgtypes.FuelKey]float64{
			ghgtypes.FuelElectricity: electricityKBtu / total,
			ghgtypes.FuelNaturalGas:  gasKBtu / total,
		},
	}
}

// ShouldEstimate reports whether the estimator fallback should trigger for
// this facility: basic input mode, or a missing/zero electricity quantity,
// when the caller has not disabled estimation.
func ShouldEstimate(facility *ghgtypes.FacilityProfile, includeEstimation bool) bool {
	if !includeEstimation {
		return false
	}
	if facility.InputMode == ghgtypes.InputModeBasic {
		return true
	}
	item, ok := facility.Energy[ghgtypes.FuelElectricity]
	return !ok || item.AnnualQuantity() <= 0
}

// ClimateAdjustment computes the (HDD65+CDD65) ratio of the target zone to
// the 4A baseline, clamped to [0.5, 2.5]. An undetermined zone yields 1.0.
func ClimateAdjustment(fs *ghgtypes.FactorSet, zone string) float64 {
	baseline, ok := fs.ClimateZones[baselineClimateZone]
	if !ok || baseline.HDD65+baseline.CDD65 == 0 {
		return 1.0
	}
	target, ok := fs.ClimateZones[zone]
	if !ok {
		return 1.0
	}
	ratio := (target.HDD65 + target.CDD65) / (baseline.HDD65 + baseline.CDD65)
	return math.Max(minClimateAdjustment, math.Min(maxClimateAdjustment, ratio))
}

// ResolveClimateZone returns the facility's explicit climate zone if set,
// else the state's default zone, else "" (undetermined).
func ResolveClimateZone(fs *ghgtypes.FactorSet, facility *ghgtypes.FacilityProfile) string {
	if facility.ClimateZone != "" {
		return facility.ClimateZone
	}
	if zone, ok := fs.StateToDefaultClimateZone[facility.State]; ok {
		return zone
	}
	return ""
}

// Apply fills in any fuel line item not already present in facility.Energy
// using the CBECS benchmark fallback, returning a new FacilityProfile (the
// input is never mutated) and leaving every already-populated field
// untouched.
func Apply(fs *ghgtypes.FactorSet, facility *ghgtypes.FacilityProfile) *ghgtypes.FacilityProfile {
	working := facility.Clone()

	bench, ok := fs.Benchmarks[facility.Building]
	if !ok {
		bench = officeDefaultBenchmark()
	}

	zone := ResolveClimateZone(fs, facility)
	adjustment := ClimateAdjustment(fs, zone)

	adjustedEUI := bench.EUIKBtuPerSqFt.Median * adjustment
	totalMMBtu := adjustedEUI * facility.SquareFeet / ghgunits.KBtuPerMMBtu

	for fuel, fraction := range bench.FuelSplit {
		if fraction <= 0 {
			continue
		}
		if _, present := working.Energy[fuel]; present {
			continue
		}
		fuelMMBtu := totalMMBtu * fraction

		var quantity float64
		var unit string
		switch fuel {
		case ghgtypes.FuelElectricity:
			quantity = math.Round(ghgunits.MMBtuToKWh(fuelMMBtu))
			unit = "kWh"
		case ghgtypes.FuelNaturalGas:
			quantity = math.Round(ghgunits.MMBtuToTherms(fuelMMBtu))
			unit = "therms"
		default:
			quantity = math.Round(fuelMMBtu)
			unit = "MMBtu"
		}

		if working.Energy == nil {
			working.Energy = make(map[ghgtypes.FuelKey]ghgtypes.EnergyLineItem)
		}
		working.Energy[fuel] = ghgtypes.EnergyLineItem{
			Quantity:    quantity,
			Unit:        unit,
			Period:      ghgtypes.PeriodAnnual,
			DataQuality: ghgtypes.DataQualityEstimated,
		}
	}

	return working
}
