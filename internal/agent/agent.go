package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"musweep/internal/influence"
)

const baseSystemPrompt = "You are a helpful assistant collaborating with peers. " +
	"Be concise and factual. When mutual influence mu is high, prefer peer-consistent " +
	"reasoning and cite their key points; when low, be skeptical and justify divergences briefly. "

// Params holds the per-agent influence parameters.
type Params struct {
	K     float64
	Tau   float64
	Alpha float64
	T0    float64
	Prior float64
}

// DefaultParams returns the control-law defaults.
func DefaultParams() Params {
	return Params{
		K:     influence.DefaultK,
		Tau:   influence.DefaultTau,
		Alpha: influence.DefaultAlpha,
		T0:    influence.DefaultT0,
		Prior: influence.DefaultPrior,
	}
}

// CallOptions controls one generation call.
type CallOptions struct {
	// Influenced derives the sampling temperature from peer trust and
	// prepends the influence annotation to the task.
	Influenced bool
	// BaseTemperature is used verbatim when Influenced is false.
	BaseTemperature float64
	// RequiredKeys, when non-empty, triggers at most one repair round if the
	// reply is not a JSON object containing every key.
	RequiredKeys []string
}

// Agent is one cooperating participant. It holds the external-service
// handle, its role prompt, and an owned trust tracker; peers interact with
// it only through Call and ReceiveFeedback.
type Agent struct {
	name     string
	system   string
	provider Provider
	tracker  *influence.PeerTrustTracker
	params   Params
}

// New creates an agent with the given role message and influence parameters.
func New(name, roleMessage string, provider Provider, params Params) *Agent {
	return &Agent{
		name:     name,
		system:   baseSystemPrompt + roleMessage,
		provider: provider,
		tracker:  influence.NewPeerTrustTracker(params.Prior),
		params:   params,
	}
}

// Name returns the agent's peer-visible name.
func (a *Agent) Name() string { return a.name }

// Mu returns the agent's current aggregate peer trust.
func (a *Agent) Mu() float64 { return a.tracker.Mu() }

// ReceiveFeedback records a trust score from a named peer.
func (a *Agent) ReceiveFeedback(peer string, score, beta float64) {
	a.tracker.ReceiveFeedback(peer, score, beta)
}

// Call issues exactly one generation request, plus at most one repair
// request when RequiredKeys are missing from the reply. The final text is
// returned unconditionally and may still be malformed; callers validate it
// through the metrics layer.
func (a *Agent) Call(ctx context.Context, task string, opts CallOptions) (string, error) {
	temperature := opts.BaseTemperature
	if opts.Influenced {
		mu := a.tracker.Mu()
		lam := influence.Mixing(mu, a.params.K, a.params.Tau)
		temperature = influence.Temperature(mu, a.params.T0, a.params.Alpha)
		prefix := fmt.Sprintf(
			"[mutual_influence mu=%.2f, mix lambda=%.2f, temp=%.2f] "+
				"If mu is high, be peer-consistent; if mu is low, justify disagreements.",
			mu, lam, temperature)
		task = prefix + "\n\n" + task
	}

	text, err := a.provider.Complete(ctx, Request{
		System:      a.system,
		Prompt:      task,
		Temperature: temperature,
		ForceJSON:   true,
	})
	if err != nil {
		return "", err
	}
	if len(opts.RequiredKeys) == 0 || hasRequiredKeys(text, opts.RequiredKeys) {
		return text, nil
	}

	// One repair round: a stricter reiteration of the schema. Its reply is
	// final regardless of outcome.
	repair := fmt.Sprintf(
		"Your previous output was not a valid JSON object with required keys. "+
			"Required keys: [%s]. Return exactly one JSON object with those keys only. "+
			"No explanations.\n\nLast task:\n%s",
		strings.Join(opts.RequiredKeys, ", "), task)
	text, err = a.provider.Complete(ctx, Request{
		System:      a.system,
		Prompt:      repair,
		Temperature: temperature,
		ForceJSON:   true,
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func hasRequiredKeys(text string, keys []string) bool {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return false
	}
	for _, key := range keys {
		if _, ok := payload[key]; !ok {
			return false
		}
	}
	return true
}
