package sweep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"musweep/internal/pass"
	"musweep/internal/testutil"
)

// fakePasses runs scripted passes while tracking peak concurrency.
type fakePasses struct {
	mu       sync.Mutex
	delay    time.Duration
	inFlight int
	peak     int
	calls    []pass.Params
	failOn   func(pass.Params) bool
	panicOn  func(pass.Params) bool
}

func (f *fakePasses) Run(_ context.Context, params pass.Params) (pass.Record, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.calls = append(f.calls, params)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.panicOn != nil && f.panicOn(params) {
		panic("scripted pass panic")
	}
	if f.failOn != nil && f.failOn(params) {
		return pass.Record{}, errors.New("scripted pass failure")
	}
	agreement := 1.0
	return pass.Record{Params: params, AgreementInfluence: &agreement}, nil
}

func (f *fakePasses) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakePasses) peakInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peak
}

func taskList(n int) []pass.Params {
	tasks := make([]pass.Params, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, pass.Params{Beta: 0.2, K: 3, Tau: 0.5, Alpha: 0.8, Seed: i + 1})
	}
	return tasks
}

// TestRunnerResume verifies a tuple already in the store is not re-executed.
func TestRunnerResume(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := tempStore(t)
	if err := store.EnsureHeader(); err != nil {
		t.Fatalf("ensure header: %v", err)
	}
	tasks := taskList(2)
	if err := store.Append(sampleRecord(tasks[0])); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	passes := &fakePasses{}
	runner := NewRunner(passes, store, nil, Options{Workers: 2})
	summary, err := runner.Run(ctx, tasks)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if passes.callCount() != 1 {
		t.Fatalf("expected exactly one new pass, got %d", passes.callCount())
	}
	if passes.calls[0] != tasks[1] {
		t.Fatalf("expected pass for %+v, got %+v", tasks[1], passes.calls[0])
	}
	if summary.AlreadyDone != 1 || summary.Completed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

// TestRunnerBoundedConcurrency verifies in-flight passes never exceed the
// worker limit.
func TestRunnerBoundedConcurrency(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := tempStore(t)
	passes := &fakePasses{delay: 30 * time.Millisecond}
	runner := NewRunner(passes, store, nil, Options{Workers: 2})

	summary, err := runner.Run(ctx, taskList(8))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Completed != 8 {
		t.Fatalf("expected 8 completions, got %d", summary.Completed)
	}
	if peak := passes.peakInFlight(); peak > 2 {
		t.Fatalf("expected at most 2 in-flight passes, got %d", peak)
	}
	if peak := passes.peakInFlight(); peak < 2 {
		t.Fatalf("expected workers to overlap, peak was %d", peak)
	}
}

// TestRunnerSkipsFailedPass verifies failed passes are not recorded and stay
// eligible for a resumed run.
func TestRunnerSkipsFailedPass(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := tempStore(t)
	tasks := taskList(3)
	failing := tasks[1]
	passes := &fakePasses{failOn: func(p pass.Params) bool { return p == failing }}
	runner := NewRunner(passes, store, nil, Options{Workers: 1})

	summary, err := runner.Run(ctx, tasks)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Completed != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	done, err := store.DoneKeys()
	if err != nil {
		t.Fatalf("done keys: %v", err)
	}
	if _, ok := done[failing]; ok {
		t.Fatalf("failed pass must not be recorded")
	}

	// A resumed run retries exactly the failed tuple.
	retry := &fakePasses{}
	summary, err = NewRunner(retry, store, nil, Options{Workers: 1}).Run(ctx, tasks)
	if err != nil {
		t.Fatalf("resume run: %v", err)
	}
	if retry.callCount() != 1 || retry.calls[0] != failing {
		t.Fatalf("expected retry of %+v, got %v", failing, retry.calls)
	}
	if summary.AlreadyDone != 2 {
		t.Fatalf("unexpected resume summary %+v", summary)
	}
}

// TestRunnerConfinesPanic verifies a panicking pass is skipped, not fatal.
func TestRunnerConfinesPanic(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := tempStore(t)
	tasks := taskList(2)
	passes := &fakePasses{panicOn: func(p pass.Params) bool { return p == tasks[0] }}

	summary, err := NewRunner(passes, store, nil, Options{Workers: 1}).Run(ctx, tasks)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Completed != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

// TestRunnerTimeBudget verifies budget exhaustion stops new dispatch while
// letting started passes finish.
func TestRunnerTimeBudget(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := tempStore(t)
	passes := &fakePasses{}

	start := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	nowCalls := 0
	now := func() time.Time {
		nowCalls++
		// Call 1 captures the start time, call 2 guards the first dispatch;
		// later calls land past the budget.
		if nowCalls <= 2 {
			return start
		}
		return start.Add(2 * time.Second)
	}
	runner := NewRunner(passes, store, nil, Options{Workers: 1, TimeBudget: time.Second, Now: now})

	summary, err := runner.Run(ctx, taskList(5))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Launched != 1 || summary.Completed != 1 {
		t.Fatalf("expected exactly one launched pass, got %+v", summary)
	}
	if !summary.BudgetStopped || summary.NotLaunched != 4 {
		t.Fatalf("expected budget stop with 4 unlaunched, got %+v", summary)
	}
}

// TestRunnerWritesRecords verifies completed passes land in the store.
func TestRunnerWritesRecords(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := tempStore(t)
	tasks := taskList(4)
	passes := &fakePasses{}

	if _, err := NewRunner(passes, store, nil, Options{Workers: 3}).Run(ctx, tasks); err != nil {
		t.Fatalf("run: %v", err)
	}
	done, err := store.DoneKeys()
	if err != nil {
		t.Fatalf("done keys: %v", err)
	}
	if len(done) != 4 {
		t.Fatalf("expected 4 recorded tuples, got %d", len(done))
	}
}

// TestAuditLogAppend verifies audit lines are written when configured.
func TestAuditLogAppend(t *testing.T) {
	ctx := testutil.Context(t, 0)
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "results.csv"))
	audit := NewAuditLog(filepath.Join(dir, "audit.jsonl"))
	tasks := taskList(2)

	if _, err := NewRunner(&fakePasses{}, store, audit, Options{Workers: 1}).Run(ctx, tasks); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(audit.path)
	if err != nil {
		t.Fatalf("read audit: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Fatalf("expected 2 audit lines, got %d", lines)
	}
}
