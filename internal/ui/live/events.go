package live

import (
	"time"

	"musweep/internal/pass"
	"musweep/internal/sweep"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventSweepStart signals the start of a sweep.
	EventSweepStart EventKind = iota
	// EventPassDone delivers a completed pass record.
	EventPassDone
	// EventPassError signals a failed pass.
	EventPassError
	// EventBudget signals that the time budget stopped dispatch.
	EventBudget
	// EventSweepEnd signals sweep completion.
	EventSweepEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind        EventKind
	RunID       string
	Planned     int
	AlreadyDone int
	Todo        int
	Params      pass.Params
	Record      pass.Record
	Err         string
	Completed   int
	Elapsed     time.Duration
	NotLaunched int
	Summary     sweep.Summary
}
