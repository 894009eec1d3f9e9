package ghgtypes

// Histogram is a fixed-bin-width histogram of a Monte Carlo sample.
type Histogram struct {
	BinEdges []float64
	Counts   []int
}

// DistributionSummary is the full set of statistics reported for totals and
// per-scope distributions.
type DistributionSummary struct {
	Mean       float64
	Median     float64
	StdDev     float64
	Min        float64
	Max        float64
	P5         float64
	P10        float64
	P25        float64
	P75        float64
	P90        float64
	P95        float64
	CI95Lower  float64
	CI95Upper  float64
	Histogram  Histogram
}

// CategorySummary is the reduced summary reported per breakdown-row
// category.
type CategorySummary struct {
	Category  string
	Mean      float64
	CI95Lower float64
	CI95Upper float64
}

// MonteCarloConfig configures a runMonteCarlo call.
type MonteCarloConfig struct {
	Runs             int
	Seed             int64
	ConfidenceLevel  float64
	HistogramBins    int
}

// DefaultMonteCarloConfig returns the documented defaults.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{Runs: 1000, Seed: 42, ConfidenceLevel: 0.95, HistogramBins: 50}
}

// SimulationResult is the output of a single runMonteCarlo call.
type SimulationResult struct {
	Total              DistributionSummary
	TotalMarketBased   DistributionSummary
	Scope1             DistributionSummary
	Scope2Location     DistributionSummary
	Scope2Market       DistributionSummary
	Scope3             DistributionSummary
	Categories         []CategorySummary
	ConvergenceDiagnostic float64
	Runs               int
	Seed               int64
}
