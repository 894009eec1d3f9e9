package engine

import "github.com/re-cinq/ghgcore/pkg/ghgtypes"

var dataQualityWeight = map[ghgtypes.DataQuality]float64{
	ghgtypes.DataQualityMeasured:  100,
	ghgtypes.DataQualityModeled:   70,
	ghgtypes.DataQualityEstimated: 40,
}

var analyticalRelativeUncertainty = map[ghgtypes.DataQuality]float64{
	ghgtypes.DataQualityMeasured:  0.05,
	ghgtypes.DataQualityModeled:   0.10,
	ghgtypes.DataQualityEstimated: 0.15,
}

// valueWeightedQualityScore returns the value-weighted data quality score
// in [0, 100] across rows, per the {measured:100, modeled:70, estimated:40}
// weighting. Rows with an unrecognized or empty data quality are weighted
// like "estimated" since that is the most conservative recognized tier.
func valueWeightedQualityScore(rows []ghgtypes.BreakdownRow) float64 {
	var totalValue, weightedScore float64
	for _, r := range rows {
		if r.ValueTCO2e <= 0 {
			continue
		}
		totalValue += r.ValueTCO2e
		weightedScore += r.ValueTCO2e * qualityWeight(r.DataQuality)
	}
	if totalValue == 0 {
		return 100
	}
	return weightedScore / totalValue
}

func qualityWeight(q ghgtypes.DataQuality) float64 {
	if w, ok := dataQualityWeight[q]; ok {
		return w
	}
	return dataQualityWeight[ghgtypes.DataQualityEstimated]
}

// analyticalUncertainty computes the value-weighted relative uncertainty
// for a set of rows and the overall data-quality classification implied by
// the measured/modeled share of their value, per §4.7.
func analyticalUncertainty(total float64, rows []ghgtypes.BreakdownRow) ghgtypes.Uncertainty {
	var totalValue, weightedRel, measuredValue, modeledValue float64
	for _, r := range rows {
		if r.ValueTCO2e <= 0 {
			continue
		}
		totalValue += r.ValueTCO2e
		weightedRel += r.ValueTCO2e * relativeUncertaintyWeight(r.DataQuality)
		switch r.DataQuality {
		case ghgtypes.DataQualityMeasured:
			measuredValue += r.ValueTCO2e
		case ghgtypes.DataQualityModeled:
			modeledValue += r.ValueTCO2e
		}
	}

	rel := 0.0
	quality := ghgtypes.DataQualityEstimated
	if totalValue > 0 {
		rel = weightedRel / totalValue
		measuredShare := measuredValue / totalValue
		modeledShare := modeledValue / totalValue
		switch {
		case measuredShare > 0.7:
			quality = ghgtypes.DataQualityMeasured
		case modeledShare > 0.3:
			quality = ghgtypes.DataQualityModeled
		}
	}

	return ghgtypes.Uncertainty{
		RelativeUncertainty: rel,
		LowerBound:          total * (1 - rel),
		UpperBound:          total * (1 + rel),
		DataQuality:         quality,
		ConfidenceLevel:     0.95,
	}
}

func relativeUncertaintyWeight(q ghgtypes.DataQuality) float64 {
	if w, ok := analyticalRelativeUncertainty[q]; ok {
		return w
	}
	return analyticalRelativeUncertainty[ghgtypes.DataQualityEstimated]
}
