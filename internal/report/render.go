package report

import (
	"database/sql"
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes the summary rows as an aligned text table.
func Render(w io.Writer, axis string, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tadv\tpasses\tmu_p\tagr_base\tagr_inf\tappr_base\tappr_inf\tcanon_base\tcanon_inf\n", axis)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Group,
			formatBool(row.Adversarial),
			row.Passes,
			formatMean(row.MeanMuPlanner),
			formatNullable(row.AgreementBaseline),
			formatNullable(row.AgreementInfluence),
			formatShare(row.ApprovalShareBaseline),
			formatShare(row.ApprovalShareInfluence),
			formatNullable(row.CanonicalBaseline),
			formatNullable(row.CanonicalInfluence),
		)
	}
	return tw.Flush()
}

func formatMean(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// formatShare returns a percentage string for report output.
func formatShare(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

func formatNullable(v sql.NullFloat64) string {
	if !v.Valid {
		return "undef"
	}
	return formatMean(v.Float64)
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
