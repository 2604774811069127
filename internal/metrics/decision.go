package metrics

import (
	"encoding/json"
	"strings"
)

// Decision is a critic verdict extracted from raw output.
type Decision string

const (
	DecisionApprove   Decision = "APPROVE"
	DecisionRevise    Decision = "REVISE"
	DecisionUndefined Decision = "UNDEFINED"
)

// ExtractDecision parses text as a JSON object with a string "decision" key
// and maps its trimmed, uppercased value onto APPROVE or REVISE. Anything
// else, including unparsable text, is DecisionUndefined.
func ExtractDecision(text string) Decision {
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return DecisionUndefined
	}
	raw, ok := payload["decision"].(string)
	if !ok {
		return DecisionUndefined
	}
	switch Decision(strings.ToUpper(strings.TrimSpace(raw))) {
	case DecisionApprove:
		return DecisionApprove
	case DecisionRevise:
		return DecisionRevise
	default:
		return DecisionUndefined
	}
}
