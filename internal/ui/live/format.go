package live

import (
	"fmt"
	"strconv"
	"time"

	"musweep/internal/pass"
	"musweep/internal/sweep"
)

func formatParams(p pass.Params) string {
	adv := "coop"
	if p.Adversarial {
		adv = "adv"
	}
	return fmt.Sprintf("b=%g k=%g t=%g a=%g s=%d %s", p.Beta, p.K, p.Tau, p.Alpha, p.Seed, adv)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "undef"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatMu(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBudget(elapsed time.Duration, notLaunched int) string {
	return fmt.Sprintf("time budget exceeded after %s, %d passes not launched",
		elapsed.Round(time.Second), notLaunched)
}

func formatSweepEnd(summary sweep.Summary) string {
	return fmt.Sprintf("sweep finished: %d completed, %d failed, %d skipped",
		summary.Completed, summary.Failed, summary.AlreadyDone)
}

func fmtInt(v int) string {
	return strconv.Itoa(v)
}
