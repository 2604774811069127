package sweep

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"musweep/internal/pass"
)

// VerboseObserver prints sweep progress lines, including per-pass parse
// status of the raw agent outputs.
type VerboseObserver struct {
	writer  io.Writer
	noColor bool
}

// NewVerboseObserver creates an observer writing to w; with workers > 1 the
// writer is wrapped so concurrent lines never interleave.
func NewVerboseObserver(workers int, w io.Writer, noColor bool) *VerboseObserver {
	return &VerboseObserver{writer: wrapVerboseWriter(workers, w), noColor: noColor}
}

func (o *VerboseObserver) OnSweepStart(runID string, planned, alreadyDone, todo int) {
	logVerbose(true, o.writer, o.noColor, styleProgress,
		"sweep %s: planned=%d already_done=%d to_run=%d", runID, planned, alreadyDone, todo)
}

func (o *VerboseObserver) OnPassDone(params pass.Params, record pass.Record, completed, todo int) {
	logVerbose(true, o.writer, o.noColor, styleResult,
		"[%d/%d] saved %s agr_inf=%s r2=%s depth=%d parse=%s",
		completed, todo, formatParams(params),
		formatOptional(record.AgreementInfluence),
		formatRoundsDisplay(record),
		record.RevisionDepth,
		parseSummary(record.Raw))
}

func (o *VerboseObserver) OnPassError(params pass.Params, err error) {
	logVerbose(true, o.writer, o.noColor, styleError, "error %s: %v", formatParams(params), err)
}

func (o *VerboseObserver) OnBudgetExceeded(elapsed time.Duration, notLaunched int) {
	logVerbose(true, o.writer, o.noColor, styleProgress,
		"time budget exceeded after %s; %d tasks not launched", elapsed.Round(time.Second), notLaunched)
}

func (o *VerboseObserver) OnSweepEnd(summary Summary) {
	logVerbose(true, o.writer, o.noColor, styleProgress,
		"done: completed=%d failed=%d not_launched=%d elapsed=%s",
		summary.Completed, summary.Failed, summary.NotLaunched, summary.Elapsed.Round(time.Second))
}

func formatParams(p pass.Params) string {
	adversarial := 0
	if p.Adversarial {
		adversarial = 1
	}
	return fmt.Sprintf("(beta=%g k=%g tau=%g alpha=%g seed=%d adv=%d)",
		p.Beta, p.K, p.Tau, p.Alpha, p.Seed, adversarial)
}

func formatRoundsDisplay(record pass.Record) string {
	if rounds := pass.RoundsToApproval(record.DecisionInfluence); rounds != nil {
		return fmt.Sprintf("%d", *rounds)
	}
	return "undef"
}

func formatOptional(v *float64) string {
	if v == nil {
		return "undef"
	}
	return fmt.Sprintf("%.4f", *v)
}

// parseSummary marks each raw output ok/bad by JSON-object validity, in call
// order: p1 r1 c1 p2 r2 c2.
func parseSummary(raw pass.RawOutputs) string {
	outputs := []string{
		raw.PlannerBaseline, raw.ResearcherBaseline, raw.CriticBaseline,
		raw.PlannerInfluence, raw.ResearcherInfluence, raw.CriticInfluence,
	}
	marks := make([]string, len(outputs))
	for i, text := range outputs {
		var payload map[string]json.RawMessage
		if json.Unmarshal([]byte(text), &payload) == nil {
			marks[i] = "ok"
		} else {
			marks[i] = "bad"
		}
	}
	return strings.Join(marks, ",")
}
