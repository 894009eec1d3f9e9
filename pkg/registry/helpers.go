package registry

import (
	"strings"

	"github.com/re-cinq/ghgcore/pkg/ghgerrors"
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/ghgunits"
)

// StateToSubregion resolves a two-letter US state code to its eGRID
// subregion code. The lookup is case-insensitive; an unknown state returns
// ("", false).
func StateToSubregion(fs *ghgtypes.FactorSet, state string) (string, bool) {
	sub, ok := fs.StateToSubregion[strings.ToUpper(strings.TrimSpace(state))]
	return sub, ok
}

// GridFactorForState resolves a state to its subregion's grid factor,
// falling back to the US national average subregion when the state is
// unknown.
func GridFactorForState(fs *ghgtypes.FactorSet, state string) ghgtypes.GridSubregionFactor {
	if sub, ok := StateToSubregion(fs, state); ok {
		if f, ok := fs.GridSubregions[sub]; ok {
			return f
		}
	}
	if f, ok := fs.GridSubregions["US_national_average"]; ok {
		return f
	}
	return ghgtypes.GridSubregionFactor{
		Subregion:    "US_national_average",
		KgCO2ePerKWh: ghgunits.DefaultUSGridEF,
		GrossLossPct: ghgunits.DefaultTDLossPct,
	}
}

// GWPFor resolves a refrigerant's GWP-100 by formal name or common name
// (case-insensitive for the common name). It returns UnknownRefrigerantError
// when neither resolves — the only place in the registry that returns an
// error rather than falling back silently.
func GWPFor(fs *ghgtypes.FactorSet, refrigerant ghgtypes.RefrigerantType) (ghgtypes.RefrigerantFactor, error) {
	if f, ok := fs.Refrigerants[refrigerant]; ok {
		return f, nil
	}
	if t, ok := fs.RefrigerantCommonName[strings.ToUpper(string(refrigerant))]; ok {
		if f, ok := fs.Refrigerants[t]; ok {
			return f, nil
		}
	}
	return ghgtypes.RefrigerantFactor{}, ghgerrors.NewUnknownRefrigerantError(string(refrigerant))
}

// DefaultLeakRate resolves the default leak rate for an equipment type,
// falling back to the table's "default" entry and finally to
// ghgunits.DefaultRefrigerantLeakRate.
func DefaultLeakRate(fs *ghgtypes.FactorSet, equipmentType string) float64 {
	if equipmentType != "" {
		if r, ok := fs.DefaultLeakRateByEquipment[equipmentType]; ok {
			return r
		}
	}
	if r, ok := fs.DefaultLeakRateByEquipment["default"]; ok {
		return r
	}
	return ghgunits.DefaultRefrigerantLeakRate
}
