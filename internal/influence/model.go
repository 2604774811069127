// Package influence implements the mutual-influence control model: the
// numeric laws that map accumulated peer trust onto sampling temperature and
// a peer-alignment mixing coefficient, and the per-agent trust tracker that
// feeds them.
package influence

import "math"

// Default control-law parameters from the experiment design.
const (
	DefaultT0    = 0.7
	DefaultAlpha = 0.8
	DefaultK     = 6.0
	DefaultTau   = 0.5
	DefaultPrior = 0.5
)

// Temperature bounds applied after modulation.
const (
	MinTemperature = 0.1
	MaxTemperature = 1.5
)

// Temperature maps aggregate trust mu to a sampling temperature
// t0 / (1 + alpha*mu), clamped to [MinTemperature, MaxTemperature].
// Negative mu is treated as 0: distrust never boosts the temperature.
func Temperature(mu, t0, alpha float64) float64 {
	t := t0 / (1.0 + alpha*math.Max(0.0, mu))
	return math.Min(MaxTemperature, math.Max(MinTemperature, t))
}

// Mixing returns the logistic peer-alignment coefficient
// 1 / (1 + exp(-k*(mu-tau))). It equals exactly 0.5 at mu == tau and
// saturates toward 0 and 1 away from tau without reaching either bound.
func Mixing(mu, k, tau float64) float64 {
	return 1.0 / (1.0 + math.Exp(-k*(mu-tau)))
}
