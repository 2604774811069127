package live

import (
	"time"

	"musweep/internal/metrics"
)

// Reduce folds one event into the UI state. It is pure apart from reading
// the clock for row timestamps.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventSweepStart:
		state.RunID = event.RunID
		state.Planned = event.Planned
		state.AlreadyDone = event.AlreadyDone
		state.Todo = event.Todo
		if state.StartedAt.IsZero() {
			state.StartedAt = time.Now()
		}
	case EventPassDone:
		state.Counts.Completed++
		switch event.Record.DecisionInfluence {
		case metrics.DecisionApprove:
			state.Counts.Approved++
		case metrics.DecisionUndefined:
			state.Counts.Undefined++
		}
		state.Rows = append(state.Rows, PassRow{
			Index:      len(state.Rows) + 1,
			Params:     event.Params,
			Record:     event.Record,
			FinishedAt: time.Now(),
		})
	case EventPassError:
		state.Counts.Failed++
		state.Rows = append(state.Rows, PassRow{
			Index:      len(state.Rows) + 1,
			Params:     event.Params,
			Failed:     true,
			Error:      event.Err,
			FinishedAt: time.Now(),
		})
		state.LastEvent = "pass failed: " + event.Err
	case EventBudget:
		state.BudgetStopped = true
		state.LastEvent = formatBudget(event.Elapsed, event.NotLaunched)
	case EventSweepEnd:
		state.Finished = true
		state.Summary = event.Summary
		state.LastEvent = formatSweepEnd(event.Summary)
	}
	return state
}
