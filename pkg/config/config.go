// Package config holds the ambient, viper-backed default knobs the core
// falls back to when a caller omits them explicitly: Monte Carlo run count,
// seed, confidence level, histogram bin count, and log level. It mirrors
// the teacher's pkg/config in shape (a package-level viper instance read
// once) but carries none of the facility/factor domain state, which always
// arrives as explicit function arguments.
package config

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
)

var (
	once sync.Once
	v    *viper.Viper
)

func instance() *viper.Viper {
	once.Do(func() {
		v = viper.New()
		v.SetDefault("montecarlo.runs", 1000)
		v.SetDefault("montecarlo.seed", 42)
		v.SetDefault("montecarlo.confidence_level", 0.95)
		v.SetDefault("montecarlo.histogram_bins", 50)
		v.SetDefault("log.level", "info")

		v.SetEnvPrefix("GHGCORE")
		v.AutomaticEnv()

		// Best-effort: a config file is optional ambient configuration,
		// never required for the core to run.
		v.SetConfigName("ghgcore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig()
	})
	return v
}

// MonteCarloDefaults returns the Monte Carlo configuration the core uses
// when runMonteCarlo is called with a nil config.
func MonteCarloDefaults() ghgtypes.MonteCarloConfig {
	c := instance()
	return ghgtypes.MonteCarloConfig{
		Runs:            c.GetInt("montecarlo.runs"),
		Seed:            c.GetInt64("montecarlo.seed"),
		ConfidenceLevel: c.GetFloat64("montecarlo.confidence_level"),
		HistogramBins:   c.GetInt("montecarlo.histogram_bins"),
	}
}

// LogLevel returns the ambient default log level string (e.g. "info",
// "debug"). pkg/log does not read it; its default logger stays at Info
// until a caller installs another via log.SetDefault.
func LogLevel() string {
	return instance().GetString("log.level")
}
