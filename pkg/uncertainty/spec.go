// Package uncertainty holds the fixed parameter-type to distribution table
// (C9) that Monte Carlo perturbation draws from.
package uncertainty

import "github.com/re-cinq/ghgcore/pkg/rng"

// Distribution names the sampling shape a ParameterType perturbs with.
type Distribution string

const (
	DistributionNormal     Distribution = "normal"
	DistributionLognormal  Distribution = "lognormal"
	DistributionTriangular Distribution = "triangular"
	DistributionFixed      Distribution = "fixed"
)

// ParameterType identifies one of the fixed perturbation categories named in
// the uncertainty spec table.
type ParameterType string

const (
	EnergyMeasured       ParameterType = "energy_measured"
	EnergyEstimated      ParameterType = "energy_estimated"
	StationaryEF         ParameterType = "stationary_ef"
	GridEF               ParameterType = "grid_ef"
	RefrigerantCharge    ParameterType = "refrigerant_charge"
	RefrigerantLeakRate  ParameterType = "refrigerant_leak_rate"
	FleetMileage         ParameterType = "fleet_mileage"
	FleetFuelEconomy     ParameterType = "fleet_fuel_economy"
	Scope3Spend          ParameterType = "scope3_spend"
	Scope3Distance       ParameterType = "scope3_distance"
	WasteQuantity        ParameterType = "waste_quantity"
	WaterQuantity        ParameterType = "water_quantity"
	GWP                  ParameterType = "gwp"
)

// Spec is one parameter type's distribution and relative uncertainty, plus
// the triangular min/max multipliers refrigerant_leak_rate uses.
type Spec struct {
	Distribution      Distribution
	RelativeUncertainty float64
	MinMultiplier     float64 // triangular only
	MaxMultiplier     float64 // triangular only
}

// Table is the fixed parameter-type -> distribution mapping. It is never
// mutated at runtime.
var Table = map[ParameterType]Spec{
	EnergyMeasured:      {Distribution: DistributionNormal, RelativeUncertainty: 0.025},
	EnergyEstimated:     {Distribution: DistributionLognormal, RelativeUncertainty: 0.15},
	StationaryEF:        {Distribution: DistributionNormal, RelativeUncertainty: 0.01},
	GridEF:              {Distribution: DistributionNormal, RelativeUncertainty: 0.05},
	RefrigerantCharge:   {Distribution: DistributionNormal, RelativeUncertainty: 0.20},
	RefrigerantLeakRate: {Distribution: DistributionTriangular, RelativeUncertainty: 0.50, MinMultiplier: 0.5, MaxMultiplier: 2.0},
	FleetMileage:        {Distribution: DistributionNormal, RelativeUncertainty: 0.10},
	FleetFuelEconomy:    {Distribution: DistributionNormal, RelativeUncertainty: 0.08},
	Scope3Spend:         {Distribution: DistributionLognormal, RelativeUncertainty: 0.30},
	Scope3Distance:      {Distribution: DistributionNormal, RelativeUncertainty: 0.15},
	WasteQuantity:       {Distribution: DistributionNormal, RelativeUncertainty: 0.20},
	WaterQuantity:       {Distribution: DistributionNormal, RelativeUncertainty: 0.10},
	GWP:                 {Distribution: DistributionFixed, RelativeUncertainty: 0},
}

// EnergyParameterType selects energy_measured or energy_estimated for an
// energy line item, per whether it was directly measured.
func EnergyParameterType(measured bool) ParameterType {
	if measured {
		return EnergyMeasured
	}
	return EnergyEstimated
}

// Perturb samples a perturbed value for the named parameter type around
// value, floored at 0 since every perturbed quantity here is physical. gwp
// is fixed and returns value unchanged without consuming the RNG stream.
func Perturb(value float64, paramType ParameterType, src *rng.Source) float64 {
	spec, ok := Table[paramType]
	if !ok || spec.Distribution == DistributionFixed {
		return value
	}

	var sample float64
	switch spec.Distribution {
	case DistributionNormal:
		sample = rng.Normal(src, value, value*spec.RelativeUncertainty)
	case DistributionLognormal:
		if value <= 0 {
			return 0
		}
		sample = rng.Lognormal(src, value, spec.RelativeUncertainty)
	case DistributionTriangular:
		min := value * spec.MinMultiplier
		max := value * spec.MaxMultiplier
		sample = rng.Triangular(src, min, value, max)
	default:
		sample = value
	}

	if sample < 0 {
		return 0
	}
	return sample
}
