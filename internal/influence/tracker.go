package influence

// PeerTrustTracker stores the trust scores an agent has received from each
// named peer. Each agent owns exactly one tracker; it is mutated only through
// ReceiveFeedback and is not safe for concurrent use.
type PeerTrustTracker struct {
	prior  float64
	scores map[string]float64
}

// NewPeerTrustTracker creates a tracker whose unseen peers start at prior.
func NewPeerTrustTracker(prior float64) *PeerTrustTracker {
	return &PeerTrustTracker{
		prior:  prior,
		scores: make(map[string]float64),
	}
}

// ReceiveFeedback blends score into the stored value for peer with an
// exponential smoothing update at rate beta: new = (1-beta)*old + beta*score.
// Scores are clamped to [0,1] before blending. beta=1 replaces the stored
// value outright; beta=0 leaves it unchanged.
func (t *PeerTrustTracker) ReceiveFeedback(peer string, score, beta float64) {
	old, ok := t.scores[peer]
	if !ok {
		old = t.prior
	}
	t.scores[peer] = (1.0-beta)*old + beta*clamp01(score)
}

// Mu returns the arithmetic mean of the stored scores, or 0 when no peer has
// given feedback yet.
func (t *PeerTrustTracker) Mu() float64 {
	if len(t.scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, score := range t.scores {
		sum += score
	}
	return sum / float64(len(t.scores))
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
