package pass

import "musweep/internal/metrics"

// RawOutputs keeps the unprocessed text of all six agent calls for auditing.
type RawOutputs struct {
	PlannerBaseline    string `json:"planner_baseline"`
	ResearcherBaseline string `json:"researcher_baseline"`
	CriticBaseline     string `json:"critic_baseline"`
	PlannerInfluence   string `json:"planner_influence"`
	ResearcherInfluence string `json:"researcher_influence"`
	CriticInfluence    string `json:"critic_influence"`
}

// Record is the flat result of one pass. Nil pointers mark metrics that are
// mathematically undefined for this pass, as opposed to a genuine 0.
type Record struct {
	Params

	MuPlanner    float64
	MuResearcher float64
	MuCritic     float64

	DecisionBaseline  metrics.Decision
	DecisionInfluence metrics.Decision

	AgreementBaseline  *float64
	AgreementInfluence *float64

	RevisionDepth int

	CanonicalBaseline  *float64
	CanonicalInfluence *float64

	PlannerSelfAgreement    *float64
	ResearcherSelfAgreement *float64

	Raw RawOutputs
}

// RoundsToApproval returns 1 when the decision is APPROVE, otherwise nil
// (undefined, never 0).
func RoundsToApproval(decision metrics.Decision) *int {
	if decision == metrics.DecisionApprove {
		one := 1
		return &one
	}
	return nil
}

func scorePtr(value float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &value
}
