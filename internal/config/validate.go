package config

import (
	"fmt"
	"strings"

	"musweep/internal/spec"
)

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Provider.Name != DefaultProviderName {
		collector.add("provider.name", fmt.Sprintf("unsupported provider %q", cfg.Provider.Name))
	}

	validateInfluence(cfg, collector.add)
	validateSweep(cfg, collector.add)

	if strings.TrimSpace(cfg.Output.ResultsPath) == "" {
		collector.add("output.results_path", "is required")
	}

	return collector.result()
}

func validateInfluence(cfg *spec.Config, add func(field, message string)) {
	if cfg.Influence.T0 <= 0 {
		add("influence.t0", "must be positive")
	}
	if cfg.Influence.Prior < 0 || cfg.Influence.Prior > 1 {
		add("influence.prior", "must be in [0,1]")
	}
	if cfg.Influence.BaseTemperature <= 0 {
		add("influence.base_temperature", "must be positive")
	}
	if cfg.Influence.CriticTemperature <= 0 {
		add("influence.critic_temperature", "must be positive")
	}
}

func validateSweep(cfg *spec.Config, add func(field, message string)) {
	validateAxis(cfg.Sweep.Axes.Beta, "sweep.axes.beta", add)
	validateAxis(cfg.Sweep.Axes.K, "sweep.axes.k", add)
	validateAxis(cfg.Sweep.Axes.Tau, "sweep.axes.tau", add)
	validateAxis(cfg.Sweep.Axes.Alpha, "sweep.axes.alpha", add)

	for _, beta := range cfg.Sweep.Axes.Beta {
		if beta < 0 || beta > 1 {
			add("sweep.axes.beta", fmt.Sprintf("value %v outside [0,1]", beta))
		}
	}
	if len(cfg.Sweep.Seeds) == 0 {
		add("sweep.seeds", "at least one seed is required")
	}
	if cfg.Sweep.Workers < 1 {
		add("sweep.workers", "must be at least 1")
	}
	if cfg.Sweep.TimeBudgetSeconds < 0 {
		add("sweep.time_budget_seconds", "must not be negative")
	}
}

func validateAxis(values []float64, field string, add func(field, message string)) {
	if len(values) == 0 {
		add(field, "at least one value is required")
	}
}
