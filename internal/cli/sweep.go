package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"musweep/internal/agent"
	"musweep/internal/config"
	"musweep/internal/pass"
	"musweep/internal/spec"
	"musweep/internal/sweep"
	"musweep/internal/ui/live"
)

// buildProvider allows tests to substitute a scripted provider.
var buildProvider = defaultBuildProvider

// defaultBuildProvider wires the OpenAI provider from process environment.
// The configured model applies unless OPENAI_MODEL_NAME overrides it.
func defaultBuildProvider(cfg spec.Config) (agent.Provider, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL_NAME"))
	if model == "" {
		model = cfg.Provider.Model
	}
	return agent.NewOpenAIProvider(apiKey, model)
}

// runSweep builds the handler for the sweep command.
func runSweep(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", config.DefaultConfigFileName, "Path to the config file")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live or plain")
		verbose := flags.Bool("verbose", false, "Log every pass with parse status (implies plain output)")
		noColor := flags.Bool("no-color", false, "Disable ANSI styling")
		auditPath := flags.String("audit", "", "Write raw agent outputs as JSON lines to this path")
		resultsPath := flags.String("results", "", "Override the results file path")
		workers := flags.Int("workers", 0, "Override the worker count")
		timeBudget := flags.Int("time-budget", -1, "Override the time budget in seconds (0 disables)")
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

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if *workers > 0 {
			cfg.Sweep.Workers = *workers
		}
		if *timeBudget >= 0 {
			cfg.Sweep.TimeBudgetSeconds = *timeBudget
		}
		if *resultsPath != "" {
			cfg.Output.ResultsPath = *resultsPath
		}
		if *auditPath != "" {
			cfg.Output.AuditPath = *auditPath
		}

		provider, err := buildProvider(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Sweep aborted: %v\n", err)
			return ExitError
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		tasks := sweep.BuildTasks(cfg.Sweep)
		store := sweep.NewStore(cfg.Output.ResultsPath)
		audit := sweep.NewAuditLog(cfg.Output.AuditPath)
		orchestrator := pass.New(provider, cfg.Influence)

		var observer sweep.Observer
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{NoColor: *noColor})
			observer = controller
		} else {
			observer = sweep.NewVerboseObserver(cfg.Sweep.Workers, stderr, *noColor)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		runner := sweep.NewRunner(orchestrator, store, audit, sweep.Options{
			Workers:    cfg.Sweep.Workers,
			TimeBudget: time.Duration(cfg.Sweep.TimeBudgetSeconds) * time.Second,
			Observer:   observer,
		})
		summary, runErr := runner.Run(ctx, tasks)

		if controller != nil {
			controller.Close()
			controller.Wait()
		}

		fmt.Fprintf(stdout, "Sweep %s: %d completed, %d failed, %d already done, %d not launched\n",
			summary.RunID, summary.Completed, summary.Failed, summary.AlreadyDone, summary.NotLaunched)
		fmt.Fprintf(stdout, "Results: %s\n", store.Path())
		if cfg.Output.AuditPath != "" {
			fmt.Fprintf(stdout, "Audit: %s\n", cfg.Output.AuditPath)
		}
		if runErr != nil {
			fmt.Fprintf(stderr, "Sweep interrupted: %v\n", runErr)
			return ExitError
		}
		if summary.Failed > 0 {
			fmt.Fprintf(stderr, "%d passes failed; rerun the sweep to retry them\n", summary.Failed)
			return ExitError
		}
		return ExitOK
	}
}
