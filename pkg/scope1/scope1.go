// Package scope1 computes direct emissions from stationary combustion,
// mobile combustion, and fugitive refrigerant leaks (C4).
package scope1

import (
	"context"
	"sort"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/ghgunits"
	"github.com/re-cinq/ghgcore/pkg/log"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

// Result bundles the scope 1 total plus any data-gap notes surfaced while
// computing it (e.g. an unresolved refrigerant).
type Result struct {
	Scope    ghgtypes.ScopeResult
	DataGaps []string
}

// Compute runs the stationary, mobile, and fugitive sub-calculators and
// sums their rows into the scope 1 total.
func Compute(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) Result {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	rows = append(rows, stationary(facility, fs)...)

	mobileRows, mobileGaps := mobile(facility, fs)
	rows = append(rows, mobileRows...)
	gaps = append(gaps, mobileGaps...)

	fugitiveRows, fugitiveGaps := fugitive(ctx, facility, fs)
	rows = append(rows, fugitiveRows...)
	gaps = append(gaps, fugitiveGaps...)

	if len(facility.Refrigerants) == 0 {
		gaps = append(gaps, "no refrigerant inventory reported; fugitive emissions assumed zero")
	}
	if len(facility.Fleet) == 0 {
		gaps = append(gaps, "no fleet inventory reported; mobile combustion assumed zero")
	}

	total := 0.0
	for _, r := range rows {
		total += r.ValueTCO2e
	}

	return Result{Scope: ghgtypes.ScopeResult{Total: total, Rows: rows}, DataGaps: gaps}
}

func stationary(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow
	fuels := make([]string, 0, len(facility.Energy))
	for fuel := range facility.Energy {
		fuels = append(fuels, string(fuel))
	}
	sort.Strings(fuels)
	for _, name := range fuels {
		fuel := ghgtypes.FuelKey(name)
		item := facility.Energy[fuel]
		if fuel == ghgtypes.FuelElectricity {
			continue // electricity is Scope 2, not stationary combustion
		}
		qty := item.AnnualQuantity()
		if qty <= 0 {
			continue
		}
		factor, ok := fs.Stationary[fuel]
		if !ok {
			continue
		}

		effectiveQty := qty
		if factor.HeatContentMMBtuPerNative != nil {
			effectiveQty = qty * (*factor.HeatContentMMBtuPerNative)
		}

		co2 := effectiveQty * factor.CO2KgPerUnit / 1000
		ch4 := effectiveQty * factor.CH4GPerUnit * ghgunits.GWPMethaneFossil / 1e6
		n2o := effectiveQty * factor.N2OGPerUnit * ghgunits.GWPNitrousOxide / 1e6

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope1,
			Category:    "stationary_combustion",
			Subcategory: string(fuel),
			ValueTCO2e:  co2 + ch4 + n2o,
			DataQuality: item.DataQuality,
			Methodology: "EPA Table 1 stationary combustion factors applied to reported fuel quantity",
			Source:      "epa-emission-factors",
			Components:  &ghgtypes.GasComponents{CO2TCO2e: co2, CH4TCO2e: ch4, N2OTCO2e: n2o},
		})
	}
	return rows
}

func mobile(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for _, group := range facility.Fleet {
		if group.FuelType == ghgtypes.VehicleFuelEV {
			continue
		}
		totalMiles := group.TotalMiles()
		if totalMiles <= 0 {
			continue
		}

		lookupFuel := group.FuelType
		if lookupFuel == ghgtypes.VehicleFuelHybrid {
			lookupFuel = ghgtypes.VehicleFuelGasoline
		}

		key := ghgtypes.MobileKey{VehicleType: group.VehicleType, FuelType: lookupFuel}
		factor, ok := fs.Mobile[key]
		if !ok {
			gaps = append(gaps, "no mobile combustion factor for vehicle type "+group.VehicleType+"/"+string(group.FuelType)+"; row skipped")
			continue
		}

		mpg := factor.DefaultMPG
		if group.FuelEfficiency != nil && *group.FuelEfficiency > 0 {
			mpg = *group.FuelEfficiency
		}
		if mpg <= 0 {
			mpg = ghgunits.DefaultMPG
		}

		gallons := totalMiles / mpg
		co2 := gallons * factor.CO2KgPerGallon / 1000
		if group.FuelType == ghgtypes.VehicleFuelHybrid {
			co2 *= ghgunits.HybridGasolineScalar
		}
		ch4 := totalMiles * factor.CH4GPerMile * ghgunits.GWPMethaneFossil / 1e6
		n2o := totalMiles * factor.N2OGPerMile * ghgunits.GWPNitrousOxide / 1e6

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope1,
			Category:    "mobile_combustion",
			Subcategory: group.VehicleType + "/" + string(group.FuelType),
			ValueTCO2e:  co2 + ch4 + n2o,
			DataQuality: group.DataQuality,
			Methodology: "EPA mobile combustion factors applied to fleet miles and fuel economy",
			Source:      "epa-emission-factors",
			Components:  &ghgtypes.GasComponents{CO2TCO2e: co2, CH4TCO2e: ch4, N2OTCO2e: n2o},
		})
	}

	return rows, gaps
}

func fugitive(ctx context.Context, facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) ([]ghgtypes.BreakdownRow, []string) {
	logger := log.FromContext(ctx)
	var rows []ghgtypes.BreakdownRow
	var gaps []string

	for _, r := range facility.Refrigerants {
		if r.ChargeKg <= 0 {
			continue
		}
		gwp, err := registry.GWPFor(fs, r.Type)
		if err != nil {
			logger.Warn("skipping unresolved refrigerant", "type", r.Type, "error", err)
			gaps = append(gaps, "unknown refrigerant type "+string(r.Type)+"; fugitive row skipped")
			continue
		}

		leakRate := r.LeakRate
		if leakRate <= 0 {
			leakRate = registry.DefaultLeakRate(fs, r.EquipmentType)
		}

		value := r.ChargeKg * leakRate * gwp.GWP100 / 1000

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope1,
			Category:    "fugitive_refrigerant",
			Subcategory: string(r.Type),
			ValueTCO2e:  value,
			DataQuality: r.DataQuality,
			Methodology: "IPCC AR6 GWP-100 applied to refrigerant charge and leak rate",
			Source:      "ipcc-ar6-gwp100",
		})
	}

	return rows, gaps
}
