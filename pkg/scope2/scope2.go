// Package scope2 computes indirect emissions from purchased electricity
// under both the location-based and market-based methods (C5). Scope 2 is
// always reported under both methods per the GHG Protocol dual-reporting
// requirement.
package scope2

import (
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

// ResolvedGrid is the grid factor resolution outcome, returned so callers
// (scope3's T&D WTT calculation) can reuse the same resolution instead of
// re-deriving it.
type ResolvedGrid struct {
	Factor ghgtypes.GridSubregionFactor
	Source string
}

// ResolveLocationGrid implements the §4.4 resolution order: explicit
// subregion, then US state, then country table, then national average.
func ResolveLocationGrid(fs *ghgtypes.FactorSet, facility *ghgtypes.FacilityProfile) ResolvedGrid {
	if facility.EGRIDSubregion != "" {
		if f, ok := fs.GridSubregions[facility.EGRIDSubregion]; ok {
			return ResolvedGrid{Factor: f, Source: "egrid-subregions (explicit subregion)"}
		}
	}
	if facility.State != "" {
		if sub, ok := registry.StateToSubregion(fs, facility.State); ok {
			if f, ok := fs.GridSubregions[sub]; ok {
				return ResolvedGrid{Factor: f, Source: "egrid-subregions (state lookup)"}
			}
		}
	}
	if facility.Country != "" && facility.Country != "US" {
		if ef, ok := fs.CountryGridEF[facility.Country]; ok {
			return ResolvedGrid{
				Factor: ghgtypes.GridSubregionFactor{Subregion: facility.Country, KgCO2ePerKWh: ef, GrossLossPct: 0},
				Source: "international_grid_factors",
			}
		}
	}
	return ResolvedGrid{Factor: registry.GridFactorForState(fs, facility.State), Source: "US_national_average fallback"}
}

// Location computes the location-based Scope 2 result: one row in category
// grid_electricity_location.
func Location(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) ghgtypes.ScopeResult {
	item, ok := facility.Energy[ghgtypes.FuelElectricity]
	if !ok || item.AnnualQuantity() <= 0 {
		return ghgtypes.ScopeResult{}
	}

	resolved := ResolveLocationGrid(fs, facility)
	loss := resolved.Factor.GrossLossPct
	if loss <= 0 {
		loss = 0.05
	}

	kwh := item.AnnualQuantity()
	value := kwh * resolved.Factor.KgCO2ePerKWh * (1 + loss) / 1000

	row := ghgtypes.BreakdownRow{
		Scope:       ghgtypes.Scope2Location,
		Category:    "grid_electricity_location",
		Subcategory: resolved.Factor.Subregion,
		ValueTCO2e:  value,
		DataQuality: item.DataQuality,
		Methodology: "location-based grid emission factor grossed up for T&D losses",
		Source:      resolved.Source,
	}

	return ghgtypes.ScopeResult{Total: value, Rows: []ghgtypes.BreakdownRow{row}}
}

// Market computes the market-based Scope 2 result following the §4.5
// hierarchy: supplier-specific EF, then renewable REC/PPA, then
// residual-mix proxy.
func Market(facility *ghgtypes.FacilityProfile, fs *ghgtypes.FactorSet) ghgtypes.ScopeResult {
	item, ok := facility.Energy[ghgtypes.FuelElectricity]
	if !ok || item.AnnualQuantity() <= 0 {
		return ghgtypes.ScopeResult{}
	}
	kwh := item.AnnualQuantity()

	if item.SupplierEF != nil {
		value := kwh * (*item.SupplierEF) / 1000
		row := ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope2Market,
			Category:    "grid_electricity_market",
			Subcategory: "supplier_specific",
			ValueTCO2e:  value,
			DataQuality: item.DataQuality,
			Methodology: "supplier-specific market-based emission factor",
			Source:      "facility-reported supplier EF",
		}
		return ghgtypes.ScopeResult{Total: value, Rows: []ghgtypes.BreakdownRow{row}}
	}

	if item.IsRenewable {
		row := ghgtypes.BreakdownRow{
			Scope:       ghgtypes.Scope2Market,
			Category:    "grid_electricity_market",
			Subcategory: "renewable_rec",
			ValueTCO2e:  0,
			DataQuality: item.DataQuality,
			Methodology: "zero-rated under REC/PPA market-based accounting",
			Source:      "facility-reported renewable flag",
		}
		return ghgtypes.ScopeResult{Total: 0, Rows: []ghgtypes.BreakdownRow{row}}
	}

	resolved := ResolveLocationGrid(fs, facility)
	loss := 0.05
	value := kwh * resolved.Factor.KgCO2ePerKWh * (1 + loss) / 1000
	row := ghgtypes.BreakdownRow{
		Scope:       ghgtypes.Scope2Market,
		Category:    "grid_electricity_market",
		Subcategory: "residual_mix",
		ValueTCO2e:  value,
		DataQuality: item.DataQuality,
		Methodology: "residual-mix proxy (eGRID subregion) grossed up for T&D losses",
		Source:      resolved.Source,
	}
	return ghgtypes.ScopeResult{Total: value, Rows: []ghgtypes.BreakdownRow{row}}
}
