// Package report summarises a sweep results file with DuckDB.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Options selects what to aggregate from a results file.
type Options struct {
	ResultsPath string
	// GroupBy is the sweep axis to group rows by. Must be one of
	// beta, k, tau, alpha or seed; adversarial is always a grouping key.
	GroupBy string
}

// Row is one aggregated group of passes.
type Row struct {
	Group       string
	Adversarial bool
	Passes      int

	MeanMuPlanner          float64
	AgreementBaseline      sql.NullFloat64
	AgreementInfluence     sql.NullFloat64
	ApprovalShareBaseline  float64
	ApprovalShareInfluence float64
	CanonicalBaseline      sql.NullFloat64
	CanonicalInfluence     sql.NullFloat64
}

var groupableAxes = map[string]bool{
	"beta":  true,
	"k":     true,
	"tau":   true,
	"alpha": true,
	"seed":  true,
}

// Summarize aggregates the results CSV grouped by one sweep axis and the
// adversarial flag. Undefined metric cells are empty in the CSV and read as
// NULL, so averages cover only the passes where the metric exists.
func Summarize(ctx context.Context, opts Options) ([]Row, error) {
	if !groupableAxes[opts.GroupBy] {
		return nil, fmt.Errorf("cannot group by %q", opts.GroupBy)
	}
	if _, err := os.Stat(opts.ResultsPath); err != nil {
		return nil, fmt.Errorf("results file: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	query := fmt.Sprintf(`
SELECT
    CAST(%[1]s AS VARCHAR) AS grp,
    CAST(adversarial AS BOOLEAN) AS adversarial,
    count(*) AS passes,
    avg(mu_planner) AS mean_mu_planner,
    avg(AgreementRate_baseline) AS agr_baseline,
    avg(AgreementRate_influence) AS agr_influence,
    avg(CASE WHEN RoundsToApproval_baseline IS NULL THEN 0.0 ELSE 1.0 END) AS approve_baseline,
    avg(CASE WHEN RoundsToApproval_influence IS NULL THEN 0.0 ELSE 1.0 END) AS approve_influence,
    avg(PlannerResearcher_Canonical_baseline) AS canon_baseline,
    avg(PlannerResearcher_Canonical_influence) AS canon_influence
FROM read_csv(%[2]s, header = true, nullstr = '')
GROUP BY grp, adversarial
ORDER BY adversarial, grp
`, opts.GroupBy, quoteLiteral(opts.ResultsPath))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summarise results: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.Group,
			&row.Adversarial,
			&row.Passes,
			&row.MeanMuPlanner,
			&row.AgreementBaseline,
			&row.AgreementInfluence,
			&row.ApprovalShareBaseline,
			&row.ApprovalShareInfluence,
			&row.CanonicalBaseline,
			&row.CanonicalInfluence,
		); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read summary rows: %w", err)
	}
	return out, nil
}

// quoteLiteral renders a SQL string literal. read_csv takes the path as a
// literal, not a bindable parameter.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
