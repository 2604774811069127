package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"musweep/internal/pass"
	"musweep/internal/sweep"
)

// Controller runs the live UI and implements sweep.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnSweepStart forwards sweep start events to the UI.
func (c *Controller) OnSweepStart(runID string, planned, alreadyDone, todo int) {
	c.send(Event{
		Kind:        EventSweepStart,
		RunID:       runID,
		Planned:     planned,
		AlreadyDone: alreadyDone,
		Todo:        todo,
	})
}

// OnPassDone forwards completed passes to the UI.
func (c *Controller) OnPassDone(params pass.Params, record pass.Record, completed, todo int) {
	c.send(Event{
		Kind:      EventPassDone,
		Params:    params,
		Record:    record,
		Completed: completed,
		Todo:      todo,
	})
}

// OnPassError forwards failed passes to the UI.
func (c *Controller) OnPassError(params pass.Params, err error) {
	c.send(Event{Kind: EventPassError, Params: params, Err: err.Error()})
}

// OnBudgetExceeded forwards the budget stop to the UI.
func (c *Controller) OnBudgetExceeded(elapsed time.Duration, notLaunched int) {
	c.send(Event{Kind: EventBudget, Elapsed: elapsed, NotLaunched: notLaunched})
}

// OnSweepEnd forwards the final summary to the UI and closes it.
func (c *Controller) OnSweepEnd(summary sweep.Summary) {
	c.send(Event{Kind: EventSweepEnd, Summary: summary})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
