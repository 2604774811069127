package pass

import (
	"context"
	"fmt"
	"strings"

	"musweep/internal/agent"
	"musweep/internal/metrics"
	"musweep/internal/spec"
)

// Agent names are peer-visible: they key the trust updates.
const (
	plannerName    = "planner"
	researcherName = "researcher"
	criticName     = "critic"
)

// Orchestrator runs experiment passes against a shared provider.
type Orchestrator struct {
	provider  agent.Provider
	influence spec.InfluenceConfig
}

// New creates an orchestrator. The influence config carries the parts of the
// control model that are fixed across the sweep.
func New(provider agent.Provider, influenceCfg spec.InfluenceConfig) *Orchestrator {
	return &Orchestrator{provider: provider, influence: influenceCfg}
}

// Run executes one complete two-round pass for params. Malformed agent text
// degrades the metrics but never fails the pass; only transport errors are
// returned, leaving the pass unrecorded and eligible for retry.
func (o *Orchestrator) Run(ctx context.Context, params Params) (Record, error) {
	agentParams := agent.Params{
		K:     params.K,
		Tau:   params.Tau,
		Alpha: params.Alpha,
		T0:    o.influence.T0,
		Prior: o.influence.Prior,
	}
	planner := agent.New(plannerName, "Role: Planner. Short prioritized plan.", o.provider, agentParams)
	researcher := agent.New(researcherName, "Role: Researcher. List concise streaming features and brief reasons.", o.provider, agentParams)
	critic := agent.New(criticName, "Role: Critic. Point gaps/risks. Reply 'APPROVE' if sufficient.", o.provider, agentParams)

	baseTemp := o.influence.BaseTemperature
	criticTemp := o.influence.CriticTemperature

	// Baseline round.
	p1, err := planner.Call(ctx, plannerBaselinePrompt(params.Seed), agent.CallOptions{
		BaseTemperature: baseTemp,
		RequiredKeys:    []string{"features", "steps"},
	})
	if err != nil {
		return Record{}, fmt.Errorf("baseline planner: %w", err)
	}
	r1, err := researcher.Call(ctx, researcherBaselinePrompt(params.Seed), agent.CallOptions{
		BaseTemperature: baseTemp,
		RequiredKeys:    []string{"features"},
	})
	if err != nil {
		return Record{}, fmt.Errorf("baseline researcher: %w", err)
	}
	c1, err := critic.Call(ctx, criticPrompt(p1, r1), agent.CallOptions{
		BaseTemperature: criticTemp,
		RequiredKeys:    []string{"decision"},
	})
	if err != nil {
		return Record{}, fmt.Errorf("baseline critic: %w", err)
	}

	injectFeedback(planner, researcher, critic, params)

	// Influenced round. The planner is pinned to the baseline researcher's
	// feature set when one was extractable.
	rf1 := metrics.ExtractFeatures(r1)
	plannerTask := plannerInfluencedPrompt()
	if len(rf1) > 0 {
		plannerTask += featureConstraint(strings.Join(rf1.Sorted(), ", "))
	}
	p2, err := planner.Call(ctx, plannerTask, agent.CallOptions{
		Influenced:   true,
		RequiredKeys: []string{"features", "steps"},
	})
	if err != nil {
		return Record{}, fmt.Errorf("influenced planner: %w", err)
	}
	r2, err := researcher.Call(ctx, researcherInfluencedPrompt(), agent.CallOptions{
		Influenced:   true,
		RequiredKeys: []string{"features"},
	})
	if err != nil {
		return Record{}, fmt.Errorf("influenced researcher: %w", err)
	}
	c2, err := critic.Call(ctx, criticPrompt(p2, r2), agent.CallOptions{
		Influenced:   true,
		RequiredKeys: []string{"decision"},
	})
	if err != nil {
		return Record{}, fmt.Errorf("influenced critic: %w", err)
	}

	record := assembleRecord(params, p1, r1, c1, p2, r2, c2)
	record.MuPlanner = planner.Mu()
	record.MuResearcher = researcher.Mu()
	record.MuCritic = critic.Mu()
	return record, nil
}

// injectFeedback applies the scripted trust stimulus between the three
// agents. The adversarial pattern is a fixed placeholder scenario with
// deliberately low critic-directed scores, not a learned strategy.
func injectFeedback(planner, researcher, critic *agent.Agent, params Params) {
	beta := params.Beta
	if params.Adversarial {
		planner.ReceiveFeedback(criticName, 0.1, beta)
		researcher.ReceiveFeedback(criticName, 0.1, beta)
		critic.ReceiveFeedback(plannerName, 0.4, beta)
		critic.ReceiveFeedback(researcherName, 0.4, beta)
	} else {
		planner.ReceiveFeedback(criticName, 0.9, beta)
		researcher.ReceiveFeedback(criticName, 0.7, beta)
		critic.ReceiveFeedback(plannerName, 0.8, beta)
		critic.ReceiveFeedback(researcherName, 0.75, beta)
	}
	planner.ReceiveFeedback(researcherName, 0.8, beta)
	researcher.ReceiveFeedback(plannerName, 0.85, beta)
}

func assembleRecord(params Params, p1, r1, c1, p2, r2, c2 string) Record {
	pf1 := metrics.ExtractFeatures(p1)
	rf1 := metrics.ExtractFeatures(r1)
	pf2 := metrics.ExtractFeatures(p2)
	rf2 := metrics.ExtractFeatures(r2)

	record := Record{
		Params:            params,
		DecisionBaseline:  metrics.ExtractDecision(c1),
		DecisionInfluence: metrics.ExtractDecision(c2),
		RevisionDepth:     len(metrics.Difference(metrics.Union(pf2, rf2), metrics.Union(pf1, rf1))),
		Raw: RawOutputs{
			PlannerBaseline:     p1,
			ResearcherBaseline:  r1,
			CriticBaseline:      c1,
			PlannerInfluence:    p2,
			ResearcherInfluence: r2,
			CriticInfluence:     c2,
		},
	}
	record.AgreementBaseline = scorePtr(metrics.Jaccard(pf1, rf1))
	record.AgreementInfluence = scorePtr(metrics.Jaccard(pf2, rf2))
	record.PlannerSelfAgreement = scorePtr(metrics.Jaccard(pf1, pf2))
	record.ResearcherSelfAgreement = scorePtr(metrics.Jaccard(rf1, rf2))
	record.CanonicalBaseline = scorePtr(metrics.CanonicalOverlap(p1, r1))
	record.CanonicalInfluence = scorePtr(metrics.CanonicalOverlap(p2, r2))
	return record
}
