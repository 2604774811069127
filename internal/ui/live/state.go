package live

import (
	"time"

	"musweep/internal/pass"
	"musweep/internal/sweep"
)

// PassRow holds UI state for a single finished pass.
type PassRow struct {
	Index      int
	Params     pass.Params
	Failed     bool
	Record     pass.Record
	Error      string
	FinishedAt time.Time
}

// StatusCounts aggregates pass counts by outcome.
type StatusCounts struct {
	Completed int
	Failed    int
	Approved  int
	Undefined int
}

// State captures the live UI state for one sweep.
type State struct {
	RunID         string
	Planned       int
	AlreadyDone   int
	Todo          int
	StartedAt     time.Time
	Rows          []PassRow
	Counts        StatusCounts
	LastEvent     string
	BudgetStopped bool
	Finished      bool
	Summary       sweep.Summary
}
