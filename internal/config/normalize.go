package config

import (
	"musweep/internal/influence"
	"musweep/internal/spec"
)

// Defaults applied by Normalize.
const (
	DefaultWorkers           = 4
	DefaultBaseTemperature   = 0.2
	DefaultCriticTemperature = 0.2
	DefaultResultsPath       = "results.csv"
	DefaultProviderName      = "openai"
)

// Normalize fills unset fields with experiment defaults.
func Normalize(cfg *spec.Config) {
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = DefaultProviderName
	}
	if cfg.Influence.T0 == 0 {
		cfg.Influence.T0 = influence.DefaultT0
	}
	if cfg.Influence.Prior == 0 {
		cfg.Influence.Prior = influence.DefaultPrior
	}
	if cfg.Influence.BaseTemperature == 0 {
		cfg.Influence.BaseTemperature = DefaultBaseTemperature
	}
	if cfg.Influence.CriticTemperature == 0 {
		cfg.Influence.CriticTemperature = DefaultCriticTemperature
	}
	if cfg.Sweep.Workers == 0 {
		cfg.Sweep.Workers = DefaultWorkers
	}
	if len(cfg.Sweep.Seeds) == 0 {
		cfg.Sweep.Seeds = []int{1}
	}
	if len(cfg.Sweep.Adversarial) == 0 {
		cfg.Sweep.Adversarial = []bool{false, true}
	}
	if cfg.Output.ResultsPath == "" {
		cfg.Output.ResultsPath = DefaultResultsPath
	}
}
