package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the sweep header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Sweep " + state.RunID
	if state.Planned > 0 {
		line += " | Planned: " + fmtInt(state.Planned) + " | Resumed: " + fmtInt(state.AlreadyDone)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Done: " + fmtInt(counts.Completed) + "/" + fmtInt(state.Todo) +
		" Failed: " + fmtInt(counts.Failed) +
		" Approved: " + fmtInt(counts.Approved) +
		" Unparsed: " + fmtInt(counts.Undefined)
	if state.BudgetStopped {
		line += " | budget stop"
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
