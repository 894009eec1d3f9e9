// Package ghgunits holds the exact unit conversions, AR6 global-warming
// potentials, and engine/factor version-string assembly shared by every
// scope calculator. Nothing in this package allocates or does I/O; it is
// pure constants and trivial arithmetic helpers so that conversion factors
// are defined exactly once.
package ghgunits

import "fmt"

// GWP-100 values for the two non-CO2 gases that appear in combustion
// (fossil methane and nitrous oxide), fixed per the GHG Protocol
// convention: these are never perturbed by Monte Carlo.
const (
	GWPMethaneFossil = 29.8
	GWPNitrousOxide  = 273.0
)

// Unit conversions used throughout the scope calculators.
const (
	// KBtuPerMMBtu converts kBtu to MMBtu (1 MMBtu = 1000 kBtu).
	KBtuPerMMBtu = 1000.0

	// MMBtuPerKWh converts kWh to MMBtu: 1 kWh = 0.003412 MMBtu.
	MMBtuPerKWh = 0.003412

	// ThermsPerMMBtu converts MMBtu to therms: 1 MMBtu = 10 therms.
	ThermsPerMMBtu = 10.0

	// ShortTonPerTonne converts metric tonnes to US short tons.
	ShortTonPerTonne = 1.0 / 0.9072

	// DefaultTDLossPct is the transmission & distribution loss fallback
	// used when a grid subregion carries no grid_gross_loss_pct.
	DefaultTDLossPct = 0.05

	// DefaultUSGridEF is the US national average grid emission factor
	// fallback, kg CO2e/kWh, used when no subregion/state/country
	// resolves.
	DefaultUSGridEF = 0.3716

	// DefaultMPG is the mobile-combustion fallback fuel economy when no
	// override and no default table entry exists.
	DefaultMPG = 25.0

	// HybridGasolineScalar is the empirical 30% reduction applied to
	// hybrid-vehicle CO2 relative to straight gasoline factors.
	HybridGasolineScalar = 0.70

	// DefaultRefrigerantLeakRate is used when neither an explicit leak
	// rate nor an equipment-type default is available.
	DefaultRefrigerantLeakRate = 0.05

	// DefaultScope3SpendFactor (kg CO2e/USD) is the fall-back for
	// unknown spend sectors across categories 1, 2, 8, 10-15.
	DefaultScope3SpendFactor = 0.30

	// DefaultTransportFactor (kg CO2e/ton-mile) fall-back for categories
	// 4 and 9 when the mode is unrecognized.
	DefaultTransportFactor = 0.1616

	// DefaultWasteFactor (tCO2e/short ton) fall-back for category 5 when
	// the (wasteType, disposalMethod) pair is unknown and even
	// mixed_msw_landfill is unavailable.
	DefaultWasteFactor = 0.52

	// DefaultBusinessTravelFactor (kg CO2e/passenger-mile) fall-back for
	// category 6.
	DefaultBusinessTravelFactor = 0.137
)

// ConfidenceLevel is the fixed analytical-uncertainty confidence the
// engine reports alongside its bounds.
const ConfidenceLevel = 0.95

// VersionString assembles the provenance string of the form
// "epa-<yr>_egrid-<yr>_defra-<yr>_ar6" stamped on every FactorSet and
// surfaced on every result.
func VersionString(epaYear, egridYear, defraYear int) string {
	return fmt.Sprintf("epa-%d_egrid-%d_defra-%d_ar6", epaYear, egridYear, defraYear)
}

// KWhToMMBtu converts a kWh quantity to MMBtu.
func KWhToMMBtu(kwh float64) float64 { return kwh * MMBtuPerKWh }

// MMBtuToKWh converts an MMBtu quantity to kWh.
func MMBtuToKWh(mmbtu float64) float64 { return mmbtu / MMBtuPerKWh }

// MMBtuToTherms converts MMBtu to therms.
func MMBtuToTherms(mmbtu float64) float64 { return mmbtu * ThermsPerMMBtu }

// TonnesToShortTons converts metric tonnes to US short tons.
func TonnesToShortTons(tonnes float64) float64 { return tonnes * ShortTonPerTonne }
