package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"musweep/internal/pass"
)

// PassRunner executes one experiment pass; the orchestrator satisfies it.
type PassRunner interface {
	Run(ctx context.Context, params pass.Params) (pass.Record, error)
}

// Options configures a sweep run.
type Options struct {
	// Workers caps the number of simultaneously in-flight passes.
	Workers int
	// TimeBudget, when positive, stops launching new passes once the wall
	// clock since sweep start exceeds it. In-flight passes run to completion.
	TimeBudget time.Duration
	Observer   Observer
	// Now and RunID are test seams.
	Now   func() time.Time
	RunID func() string
}

// Summary reports what one sweep run did.
type Summary struct {
	RunID         string
	Planned       int
	AlreadyDone   int
	Launched      int
	Completed     int
	Failed        int
	NotLaunched   int
	BudgetStopped bool
	Elapsed       time.Duration
}

// Runner executes the filtered task list against a pass runner and persists
// each completed record. A failed pass is logged and skipped, never written,
// so a future resumed run retries it.
type Runner struct {
	passes     PassRunner
	store      *Store
	audit      *AuditLog
	observer   Observer
	workers    int
	timeBudget time.Duration
	now        func() time.Time
	newRunID   func() string
}

// NewRunner wires a runner. A nil audit log disables auditing.
func NewRunner(passes PassRunner, store *Store, audit *AuditLog, opts Options) *Runner {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newRunID := opts.RunID
	if newRunID == nil {
		newRunID = NewRunID
	}
	return &Runner{
		passes:     passes,
		store:      store,
		audit:      audit,
		observer:   observer,
		workers:    workers,
		timeBudget: opts.TimeBudget,
		now:        now,
		newRunID:   newRunID,
	}
}

// NewRunID returns a sortable sweep identifier.
func NewRunID() string {
	return time.Now().UTC().Format("20060102T150405Z") + "-" + uuid.NewString()[:8]
}

// Run executes every task not already present in the store.
func (r *Runner) Run(ctx context.Context, tasks []pass.Params) (Summary, error) {
	done, err := r.store.DoneKeys()
	if err != nil {
		return Summary{}, err
	}
	todo := FilterDone(tasks, done)
	if err := r.store.EnsureHeader(); err != nil {
		return Summary{}, err
	}

	runID := r.newRunID()
	r.observer.OnSweepStart(runID, len(tasks), len(tasks)-len(todo), len(todo))

	start := r.now()
	state := &runState{todo: len(todo)}
	taskCh := make(chan pass.Params)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, taskCh, state)
		}()
	}

	launched := 0
	budgetStopped := false
dispatch:
	for _, params := range todo {
		if r.timeBudget > 0 && r.now().Sub(start) > r.timeBudget {
			budgetStopped = true
			r.observer.OnBudgetExceeded(r.now().Sub(start), len(todo)-launched)
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case taskCh <- params:
			launched++
		}
	}
	close(taskCh)
	wg.Wait()

	completed, failed := state.counts()
	summary := Summary{
		RunID:         runID,
		Planned:       len(tasks),
		AlreadyDone:   len(tasks) - len(todo),
		Launched:      launched,
		Completed:     completed,
		Failed:        failed,
		NotLaunched:   len(todo) - launched,
		BudgetStopped: budgetStopped,
		Elapsed:       r.now().Sub(start),
	}
	r.observer.OnSweepEnd(summary)
	return summary, ctx.Err()
}

func (r *Runner) worker(ctx context.Context, taskCh <-chan pass.Params, state *runState) {
	for params := range taskCh {
		record, err := r.runPass(ctx, params)
		if err != nil {
			state.fail()
			r.observer.OnPassError(params, err)
			continue
		}
		if err := r.store.Append(record); err != nil {
			state.fail()
			r.observer.OnPassError(params, err)
			continue
		}
		if err := r.audit.Append(record); err != nil {
			// Auditing is best effort; the recorded result stands.
			r.observer.OnPassError(params, fmt.Errorf("audit: %w", err))
		}
		r.observer.OnPassDone(params, record, state.complete(), state.todo)
	}
}

// runPass confines any panic from a pass to that pass, matching the
// skip-and-resume failure semantics of the sweep boundary.
func (r *Runner) runPass(ctx context.Context, params pass.Params) (record pass.Record, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pass panicked: %v", rec)
		}
	}()
	return r.passes.Run(ctx, params)
}

type runState struct {
	mu        sync.Mutex
	todo      int
	completed int
	failed    int
}

func (s *runState) complete() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed++
	return s.completed
}

func (s *runState) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

func (s *runState) counts() (completed, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed, s.failed
}
