// Package scope3 computes the fifteen GHG Protocol Scope 3 categories
// (C6), each dispatched by its input shape: spend-based, transport/ton-mile,
// travel/passenger-mile, commuting, or auto-computed from Scope 1/2 usage.
package scope3

import (
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/ghgunits"
	"github.com/re-cinq/ghgcore/pkg/scope2"
)

var transportModeNormalization = map[string]string{
	"truck":      "truck_medium_heavy",
	"rail":       "rail",
	"waterborne": "waterborne_cargo",
	"air":        "air_freight",
}

var spendCategories = []int{1, 2, 8, 10, 11, 12, 13, 14, 15}

// Compute runs every category dispatcher and returns the combined Scope 3
// result. fs and facility are read-only; category 7 uses 250 working days
// when Scope3Inputs.WorkingDays is unset.
func Compute(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) ghgtypes.ScopeResult {
	var rows []ghgtypes.BreakdownRow

	rows = append(rows, spendBased(facility, fs)...)

	if facility.Scope3.AutoComputeCat3 {
		rows = append(rows, fuelEnergyRelated(facility, fs)...)
	}

	rows = append(rows, transport(facility, fs)...)

	if facility.Scope3.AutoComputeCat5 {
		rows = append(rows, waste(facility, fs)...)
	}

	rows = append(rows, businessTravel(facility, fs)...)
	rows = append(rows, commuting(facility, fs)...)

	total := 0.0
	for _, r := range rows {
		total += r.ValueTCO2e
	}
	return ghgtypes.ScopeResult{Total: total, Rows: rows}
}

// categoryLabel gives each spend category its GHG Protocol name for the
// breakdown row's Category field.
var categoryLabel = map[int]string{
	1:  "cat1_purchased_goods_services",
	2:  "cat2_capital_goods",
	8:  "cat8_upstream_leased_assets",
	10: "cat10_processing_of_sold_products",
	11: "cat11_use_of_sold_products",
	12: "cat12_end_of_life_of_sold_products",
	13: "cat13_downstream_leased_assets",
	14: "cat14_franchises",
	15: "cat15_investments",
}

func spendBased(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow
	for _, cat := range spendCategories {
		entries := facility.Scope3.Spend[cat]
		for _, e := range entries {
			if e.AnnualUSD <= 0 {
				continue
			}
			factor, ok := fs.SpendFactors[e.Sector]
			if !ok {
				factor = ghgunits.DefaultScope3SpendFactor
			}
			value := e.AnnualUSD * factor / 1000
			rows = append(rows, ghgtypes.BreakdownRow{
				Scope:       ghgtypes.Scope3,
				Category:    categoryLabel[cat],
				Subcategory: e.Sector,
				ValueTCO2e:  value,
				DataQuality: ghgtypes.DataQualityEstimated,
				Methodology: "spend-based EEIO factor applied to reported annual spend",
				Source:      "scope3-spend-factors",
			})
		}
	}
	return rows
}

func fuelEnergyRelated(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow

	if item, ok := facility.Energy[ghgtypes.FuelNaturalGas]; ok && item.AnnualQuantity() > 0 {
		therms := item.AnnualQuantity()
		mmbtu := therms * 0.1
		wtt := fs.UpstreamWTT[ghgtypes.FuelNaturalGas]
		value := mmbtu * wtt / 1000
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat3_fuel_energy_wtt",
			Subcategory: "naturalGas",
			ValueTCO2e:  value,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: "well-to-tank upstream factor applied to natural gas MMBtu",
			Source:      "epa-emission-factors (upstream_wtt)",
		})
	}

	if item, ok := facility.Energy[ghgtypes.FuelDiesel]; ok && item.AnnualQuantity() > 0 {
		gallons := item.AnnualQuantity()
		wtt := fs.UpstreamWTT[ghgtypes.FuelDiesel]
		value := gallons * wtt / 1000
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat3_fuel_energy_wtt",
			Subcategory: "diesel",
			ValueTCO2e:  value,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: "well-to-tank upstream factor applied to diesel gallons",
			Source:      "epa-emission-factors (upstream_wtt)",
		})
	}

	if item, ok := facility.Energy[ghgtypes.FuelElectricity]; ok && item.AnnualQuantity() > 0 {
		resolved := scope2.ResolveLocationGrid(fs, facility)
		loss := resolved.Factor.GrossLossPct
		if loss <= 0 {
			loss = 0.05
		}
		kwh := item.AnnualQuantity()
		value := kwh * loss * resolved.Factor.KgCO2ePerKWh / 1000
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat3_fuel_energy_wtt",
			Subcategory: "electricity_td_losses",
			ValueTCO2e:  value,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: "T&D loss portion of purchased electricity at the resolved grid factor",
			Source:      resolved.Source,
		})
	}

	return rows
}

func transport(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow
	for _, t := range facility.Scope3.Transport {
		if t.TonMiles <= 0 {
			continue
		}
		mode := transportModeNormalization[t.Mode]
		if mode == "" {
			mode = t.Mode
		}
		factor, ok := fs.ProductTransport[mode]
		kgPerTonMi := ghgunits.DefaultTransportFactor
		if ok {
			kgPerTonMi = factor.KgPerUnit
		}
		value := t.TonMiles * kgPerTonMi / 1000
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat4_cat9_transportation_distribution",
			Subcategory: mode,
			ValueTCO2e:  value,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: "mode-specific factor applied to reported ton-miles",
			Source:      "epa-emission-factors (product_transport)",
		})
	}
	return rows
}

func waste(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow
	for _, w := range facility.Waste {
		if w.AnnualTonnes <= 0 {
			continue
		}
		shortTons := ghgunits.TonnesToShortTons(w.AnnualTonnes)

		key := ghgtypes.WasteFactorKey{WasteType: w.WasteType, DisposalMethod: w.DisposalMethod}
		factor, ok := fs.WasteFactors[key]
		source := "waste factor table (exact match)"
		if !ok {
			fallbackKey := ghgtypes.WasteFactorKey{WasteType: "mixed_msw", DisposalMethod: "landfill"}
			factor, ok = fs.WasteFactors[fallbackKey]
			source = "waste factor table (mixed_msw/landfill fallback)"
			if !ok {
				factor = ghgunits.DefaultWasteFactor
				source = "default waste factor (0.52 tCO2e/short ton)"
			}
		}

		value := shortTons * factor
		if value < 0 {
			value = 0
		}

		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat5_waste_generated",
			Subcategory: w.WasteType + "/" + w.DisposalMethod,
			ValueTCO2e:  value,
			DataQuality: w.DataQuality,
			Methodology: "waste-type/disposal-method factor applied to short tons (recycling credits floored at 0)",
			Source:      source,
		})
	}
	return rows
}

func businessTravel(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow
	for _, t := range facility.Scope3.Travel {
		if t.PaxMiles <= 0 {
			continue
		}
		kgPerMi := ghgunits.DefaultBusinessTravelFactor
		if factor, ok := fs.BusinessTravel[t.Mode]; ok {
			kgPerMi = factor.KgPerUnit
		}
		value := t.PaxMiles * kgPerMi / 1000
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat6_business_travel",
			Subcategory: t.Mode,
			ValueTCO2e:  value,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: "mode-specific factor applied to reported passenger-miles",
			Source:      "epa-emission-factors (business_travel)",
		})
	}
	return rows
}

func commuting(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) []ghgtypes.BreakdownRow {
	var rows []ghgtypes.BreakdownRow
	if facility.Occupancy == nil || len(facility.Scope3.Commute) == 0 {
		return rows
	}
	employees := facility.Occupancy.Employees
	workingDays := facility.Scope3.WorkingDays
	if workingDays <= 0 {
		workingDays = 250
	}

	for _, c := range facility.Scope3.Commute {
		if c.Share <= 0 || c.OneWayMiles <= 0 {
			continue
		}
		kgPerMi := 0.0
		if factor, ok := fs.Commuting[c.Mode]; ok {
			kgPerMi = factor.KgPerUnit
		}
		value := employees * c.Share * c.OneWayMiles * 2 * workingDays * kgPerMi / 1000
		rows = append(rows, ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope3,
			Category:    "cat7_employee_commuting",
			Subcategory: c.Mode,
			ValueTCO2e:  value,
			DataQuality: ghgtypes.DataQualityEstimated,
			Methodology: "mode share, round-trip distance, and working days applied across reported headcount",
			Source:      "epa-emission-factors (commuting)",
		})
	}
	return rows
}
