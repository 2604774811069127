// Package pass drives one complete two-round mutual-influence experiment:
// baseline planner/researcher/critic calls, scripted feedback injection,
// influenced calls, and metrics assembly into a single record.
package pass

// Params uniquely identifies one sweep task. The tuple is the dedup key for
// resume: two tasks are the same iff every field matches exactly.
type Params struct {
	Beta        float64
	K           float64
	Tau         float64
	Alpha       float64
	Seed        int
	Adversarial bool
}
