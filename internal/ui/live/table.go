package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "params", Width: 36},
		{Title: "status", Width: 8},
		{Title: "dec_inf", Width: 10},
		{Title: "agr_inf", Width: 8},
		{Title: "mu_p", Width: 6},
	}
}

func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for i, column := range columns {
		if i != 1 {
			fixed += column.Width
		}
	}
	// Give the params column the remaining width, within reason.
	remaining := width - fixed - len(columns)*2
	if remaining > 36 {
		columns[1].Width = remaining
	}
	return columns
}

// rowsForState converts UI state into table rows, most recent first.
func rowsForState(state State) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for i := len(state.Rows) - 1; i >= 0; i-- {
		row := state.Rows[i]
		status := "done"
		decision := string(row.Record.DecisionInfluence)
		agreement := formatOptional(row.Record.AgreementInfluence)
		mu := formatMu(row.Record.MuPlanner)
		if row.Failed {
			status = "failed"
			decision = ""
			agreement = ""
			mu = ""
		}
		rows = append(rows, table.Row{
			fmtInt(row.Index),
			formatParams(row.Params),
			status,
			decision,
			agreement,
			mu,
		})
	}
	return rows
}
