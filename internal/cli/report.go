package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"musweep/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		resultsPath := flags.String("results", "results.csv", "Path to the results file")
		groupBy := flags.String("group-by", "beta", "Sweep axis to group by")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		rows, err := report.Summarize(context.Background(), report.Options{
			ResultsPath: *resultsPath,
			GroupBy:     *groupBy,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		if err := report.Render(stdout, *groupBy, rows); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
