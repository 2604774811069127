package sweep

import (
	"time"

	"musweep/internal/pass"
)

// Observer receives sweep progress events. Implementations must not block:
// the runner calls them from worker goroutines.
type Observer interface {
	OnSweepStart(runID string, planned, alreadyDone, todo int)
	OnPassDone(params pass.Params, record pass.Record, completed, todo int)
	OnPassError(params pass.Params, err error)
	OnBudgetExceeded(elapsed time.Duration, notLaunched int)
	OnSweepEnd(summary Summary)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnSweepStart(string, int, int, int)            {}
func (NopObserver) OnPassDone(pass.Params, pass.Record, int, int) {}
func (NopObserver) OnPassError(pass.Params, error)                {}
func (NopObserver) OnBudgetExceeded(time.Duration, int)           {}
func (NopObserver) OnSweepEnd(Summary)                            {}
