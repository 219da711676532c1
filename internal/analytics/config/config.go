// Package config holds the tunable statistical parameters of the analytics
// engine. Defaults match the documented contract; operators can override
// them from a YAML file without recompiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config parameterizes the analytics engine.
type Config struct {
	// LowConfidenceFloor is the sample size below which every indicator is
	// labeled "low" confidence. This threshold is a hard contract with
	// consumers; see models.BiasIndicator.
	LowConfidenceFloor int `yaml:"low_confidence_floor"`
	// ModerateConfidenceFloor is the sample size below which indicators at
	// or above LowConfidenceFloor are labeled "moderate" rather than "high".
	ModerateConfidenceFloor int `yaml:"moderate_confidence_floor"`

	// IntervalLowQuantile and IntervalHighQuantile bound the empirical
	// time-to-ruling range (order statistics, not a parametric interval).
	IntervalLowQuantile  float64 `yaml:"interval_low_quantile"`
	IntervalHighQuantile float64 `yaml:"interval_high_quantile"`

	// SurvivalPointBudget is the target number of survival-curve points.
	// The emitted curve never exceeds twice this budget.
	SurvivalPointBudget int `yaml:"survival_point_budget"`
}

// Default returns the documented engine parameters.
func Default() Config {
	return Config{
		LowConfidenceFloor:      20,
		ModerateConfidenceFloor: 100,
		IntervalLowQuantile:     0.10,
		IntervalHighQuantile:    0.90,
		SurvivalPointBudget:     50,
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects parameter combinations the engine cannot honor.
func (c Config) Validate() error {
	if c.LowConfidenceFloor <= 0 {
		return fmt.Errorf("low_confidence_floor must be positive, got %d", c.LowConfidenceFloor)
	}
	if c.ModerateConfidenceFloor <= c.LowConfidenceFloor {
		return fmt.Errorf("moderate_confidence_floor (%d) must exceed low_confidence_floor (%d)",
			c.ModerateConfidenceFloor, c.LowConfidenceFloor)
	}
	if c.IntervalLowQuantile < 0 || c.IntervalHighQuantile > 1 || c.IntervalLowQuantile >= c.IntervalHighQuantile {
		return fmt.Errorf("interval quantiles must satisfy 0 <= low < high <= 1, got [%v, %v]",
			c.IntervalLowQuantile, c.IntervalHighQuantile)
	}
	if c.SurvivalPointBudget <= 0 {
		return fmt.Errorf("survival_point_budget must be positive, got %d", c.SurvivalPointBudget)
	}
	return nil
}
