// Package scenario implements the evaluator (C13): closed-form
// per-intervention delta models, the 10-year grid-decarbonization
// trajectory, and the financial wiring (NPV/IRR/payback/cumulative
// avoided) built on top of a computeAll baseline.
package scenario

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/re-cinq/ghgcore/pkg/financial"
	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/projection"
	"github.com/re-cinq/ghgcore/pkg/telemetry"
)

const (
	trajectoryYears  = 10
	scope2Fraction   = 0.45
	discountRate     = 0.08

	renewablePremiumPerKWh = 0.015
	evCapexPerVehicle      = 12000.0
	evOpexSavingsPerVehicle = 1200.0
	evGridChargingOffset   = 0.35
	hvacOldCOPDefault      = 2.5
	hvacNewCOPDefault      = 4.0
	hvacCapexPerSqFt       = 8.0
	hvacOpexSavingsRate    = 0.12
	solarCapexPerKW        = 2500.0
	solarOpexSavingsPerKWh = 0.12
	hoursPerYear           = 8760.0
	envelopeCapexWithS1    = 50000.0
	envelopeCapexNoS1      = 25000.0
	envelopeOpexSavingsRate = 0.08
	wasteReductionCapex    = 5000.0
	wasteReductionOpexSavings = 2000.0
	wasteReductionFactor   = 0.80
)

// Baseline is the subset of a computeAll result the intervention models
// need: total, the scope-specific totals, and the facility's resolved grid
// emission factor.
type Baseline struct {
	Total            float64
	Scope1Total      float64
	Scope2Location   float64
	MobileScope1     float64 // scope1 mobile_combustion rows only
	Scope3Cat5Total  float64 // scope3 cat5_waste_generated rows only
	GridEFKgPerKWh   float64
}

// BaselineFromResult derives a Baseline from a computeAll EmissionResult.
func BaselineFromResult(result *ghgtypes.EmissionResult, gridEFKgPerKWh float64) Baseline {
	b := Baseline{
		Total:          result.Total,
		Scope1Total:    result.Scope1.Total,
		Scope2Location: result.Scope2.Location.Total,
		GridEFKgPerKWh: gridEFKgPerKWh,
	}
	for _, row := range result.Breakdown {
		switch {
		case row.Scope == ghgtypes.Scope1 && row.Category == "mobile_combustion":
			b.MobileScope1 += row.ValueTCO2e
		case row.Scope == ghgtypes.Scope3 && row.Category == "cat5_waste_generated":
			b.Scope3Cat5Total += row.ValueTCO2e
		}
	}
	return b
}

// Evaluate runs every intervention's delta model independently, sums the
// results, builds the 10-year grid-decarbonization trajectory, and wires
// the aggregate cash flows through pkg/financial. When the caller passes no
// interventions, name is resolved against the embedded preset bundles
// (presets.yaml) before falling back to an empty scenario.
func Evaluate(ctx context.Context, name string, fs *ghgtypes.FactorSet, facility *ghgtypes.FacilityProfile, interventions []ghgtypes.Intervention, baseline Baseline, currentYear int) (*ghgtypes.ScenarioResult, error) {
	if len(interventions) == 0 {
		if preset, ok := ResolvePreset(name); ok {
			interventions = preset
		}
	}

	var result *ghgtypes.ScenarioResult
	err := telemetry.Span(ctx, "evaluateScenario", []attribute.KeyValue{
		attribute.String("ghgcore.scenario", name),
		attribute.Int("ghgcore.intervention_count", len(interventions)),
	}, func(ctx context.Context) error {
		result = evaluate(name, fs, facility, interventions, baseline, currentYear)
		return nil
	})
	return result, err
}

func evaluate(name string, fs *ghgtypes.FactorSet, facility *ghgtypes.FacilityProfile, interventions []ghgtypes.Intervention, baseline Baseline, currentYear int) *ghgtypes.ScenarioResult {
	results := make([]ghgtypes.InterventionResult, 0, len(interventions))
	var totalReduction, totalCapex, totalOpExDelta float64

	for _, iv := range interventions {
		r := applyIntervention(iv, facility, baseline)
		results = append(results, r)
		totalReduction += r.ReductionTCO2e
		totalCapex += r.CapexUSD
		totalOpExDelta += r.AnnualOpExDeltaUSD
	}

	annualSavings := -totalOpExDelta
	projected := baseline.Total - totalReduction
	if projected < 0 {
		projected = 0
	}

	trajectory := buildTrajectory(fs, baseline.Total, totalReduction, currentYear)

	cashFlows := financial.BuildCashFlows(totalCapex, annualSavings, trajectoryYears)
	npv := financial.NPV(cashFlows, discountRate)
	irr := financial.IRR(cashFlows)
	payback := financial.Payback(totalCapex, annualSavings)

	cumulativeAvoided := 0.0
	if len(trajectory) > 0 {
		cumulativeAvoided = trajectory[len(trajectory)-1].CumulativeReduction
	}

	return &ghgtypes.ScenarioResult{
		Name:                    name,
		Interventions:           results,
		TotalReductionTCO2e:     totalReduction,
		TotalCapexUSD:           totalCapex,
		AnnualSavingsUSD:        annualSavings,
		BaselineTCO2e:           baseline.Total,
		ProjectedEmissionsTCO2e: projected,
		Trajectory:              trajectory,
		Financial: ghgtypes.FinancialSummary{
			NPV:                       npv,
			IRR:                       irr,
			SimplePaybackYears:        payback,
			CashFlows:                 cashFlows,
			CumulativeCO2AvoidedTCO2e: cumulativeAvoided,
		},
	}
}

func applyIntervention(iv ghgtypes.Intervention, facility *ghgtypes.FacilityProfile, baseline Baseline) ghgtypes.InterventionResult {
	switch iv.Type {
	case ghgtypes.InterventionRenewableSwitch:
		return renewableSwitch(iv, facility, baseline)
	case ghgtypes.InterventionFleetElectrification:
		return fleetElectrification(iv, baseline)
	case ghgtypes.InterventionHVACUpgrade:
		return hvacUpgrade(iv, facility, baseline)
	case ghgtypes.InterventionSolarOnsite:
		return solarOnsite(iv, baseline)
	case ghgtypes.InterventionBuildingEnvelope:
		return buildingEnvelope(iv, baseline)
	case ghgtypes.InterventionWasteReduction:
		return wasteReduction(iv, baseline)
	default:
		return ghgtypes.InterventionResult{Intervention: iv}
	}
}

func renewableSwitch(iv ghgtypes.Intervention, facility *ghgtypes.FacilityProfile, baseline Baseline) ghgtypes.InterventionResult {
	renewablePct := iv.Params["renewablePct"]
	reduction := baseline.Scope2Location * renewablePct

	electricityKWh := 0.0
	if item, ok := facility.Energy[ghgtypes.FuelElectricity]; ok {
		electricityKWh = item.AnnualQuantity()
	}
	estimatedKWh := electricityKWh * renewablePct

	return ghgtypes.InterventionResult{
		Intervention:       iv,
		ReductionTCO2e:     reduction,
		CapexUSD:           0,
		AnnualOpExDeltaUSD: estimatedKWh * renewablePremiumPerKWh,
	}
}

func fleetElectrification(iv ghgtypes.Intervention, baseline Baseline) ghgtypes.InterventionResult {
	ePct := iv.Params["ePct"]
	evCount := iv.Params["evCount"]

	reduction := baseline.MobileScope1 * ePct * (1 - evGridChargingOffset)

	return ghgtypes.InterventionResult{
		Intervention:       iv,
		ReductionTCO2e:     reduction,
		CapexUSD:           evCount * evCapexPerVehicle,
		AnnualOpExDeltaUSD: -evCount * evOpexSavingsPerVehicle,
	}
}

// hvacUpgrade defaults oldCOP/newCOP to 2.5/4.0 when the caller omits them
// or passes a non-positive value. The result does not record that a
// default was used.
func hvacUpgrade(iv ghgtypes.Intervention, facility *ghgtypes.FacilityProfile, baseline Baseline) ghgtypes.InterventionResult {
	oldCOP := iv.Params["oldCOP"]
	if oldCOP <= 0 {
		oldCOP = hvacOldCOPDefault
	}
	newCOP := iv.Params["newCOP"]
	if newCOP <= 0 {
		newCOP = hvacNewCOPDefault
	}

	reduction := (baseline.Scope1Total + baseline.Scope2Location) * 0.50 * (1 - oldCOP/newCOP)
	capex := facility.SquareFeet * hvacCapexPerSqFt

	return ghgtypes.InterventionResult{
		Intervention:       iv,
		ReductionTCO2e:     reduction,
		CapexUSD:           capex,
		AnnualOpExDeltaUSD: -capex * hvacOpexSavingsRate,
	}
}

func solarOnsite(iv ghgtypes.Intervention, baseline Baseline) ghgtypes.InterventionResult {
	capacityKW := iv.Params["capacityKw"]
	capacityFactor := iv.Params["annualCapacityFactor"]

	annualKWh := capacityKW * hoursPerYear * capacityFactor
	reduction := annualKWh * baseline.GridEFKgPerKWh / 1000

	return ghgtypes.InterventionResult{
		Intervention:       iv,
		ReductionTCO2e:     reduction,
		CapexUSD:           capacityKW * solarCapexPerKW,
		AnnualOpExDeltaUSD: -annualKWh * solarOpexSavingsPerKWh,
	}
}

func buildingEnvelope(iv ghgtypes.Intervention, baseline Baseline) ghgtypes.InterventionResult {
	heatingPct := iv.Params["heatingPct"]
	coolingPct := iv.Params["coolingPct"]

	reduction := (baseline.Scope1Total + baseline.Scope2Location) * (0.30*heatingPct + 0.20*coolingPct)

	capex := envelopeCapexWithS1
	if baseline.Scope1Total <= 0 {
		capex = envelopeCapexNoS1
	}

	return ghgtypes.InterventionResult{
		Intervention:       iv,
		ReductionTCO2e:     reduction,
		CapexUSD:           capex,
		AnnualOpExDeltaUSD: -capex * envelopeOpexSavingsRate,
	}
}

func wasteReduction(iv ghgtypes.Intervention, baseline Baseline) ghgtypes.InterventionResult {
	diversionPct := iv.Params["diversionPct"]
	reduction := baseline.Scope3Cat5Total * diversionPct * wasteReductionFactor

	return ghgtypes.InterventionResult{
		Intervention:       iv,
		ReductionTCO2e:     reduction,
		CapexUSD:           wasteReductionCapex,
		AnnualOpExDeltaUSD: -wasteReductionOpexSavings,
	}
}

// buildTrajectory projects grid decarbonization across 11 points
// (currentYear..currentYear+10), each applying the grid-adjusted baseline
// and the scenario's fixed total reduction.
func buildTrajectory(fs *ghgtypes.FactorSet, baseline, totalReduction float64, currentYear int) []ghgtypes.TrajectoryPoint {
	points := make([]ghgtypes.TrajectoryPoint, 0, trajectoryYears+1)
	currentGridEF := projection.GridEF(fs, currentYear)
	cumulative := 0.0

	for i := 0; i <= trajectoryYears; i++ {
		year := currentYear + i
		gridEF := projection.GridEF(fs, year)

		declineRatio := 1.0
		if currentGridEF != 0 {
			declineRatio = gridEF / currentGridEF
		}
		gridAdjustedBaseline := baseline * (1 - scope2Fraction + scope2Fraction*declineRatio)

		scenarioEmissions := gridAdjustedBaseline - totalReduction
		if scenarioEmissions < 0 {
			scenarioEmissions = 0
		}
		cumulative += gridAdjustedBaseline - scenarioEmissions

		points = append(points, ghgtypes.TrajectoryPoint{
			Year:                year,
			GridEF:              gridEF,
			ProjectedEmissions:  scenarioEmissions,
			CumulativeReduction: cumulative,
		})
	}

	return points
}
