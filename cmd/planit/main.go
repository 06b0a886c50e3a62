package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/dusk-indust/planit/internal/agent"
	"github.com/dusk-indust/planit/internal/config"
	"github.com/dusk-indust/planit/internal/export"
	"github.com/dusk-indust/planit/internal/mcptools"
	"github.com/dusk-indust/planit/internal/metrics"
	"github.com/dusk-indust/planit/internal/orchestrator"
	"github.com/dusk-indust/planit/internal/route"
	"github.com/dusk-indust/planit/internal/routes"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Source            string
	Destination       string
	Priority          string
	ConfigDir         string
	RoutesFile        string
	Format            string
	IncludeInfeasible bool
	StrictPriority    bool
	Parallel          bool
	Metrics           bool
	Verbose           bool
	ServeMCP          bool
	Version           bool
}

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("planit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.Source, "source", "Location A", "starting location")
	fs.StringVar(&flags.Destination, "destination", "Location B", "target location")
	fs.StringVar(&flags.Priority, "priority", "fast", "optimisation priority: fast or cheap")
	fs.StringVar(&flags.ConfigDir, "config-dir", ".", "directory holding planit.yml and .env")
	fs.StringVar(&flags.RoutesFile, "routes", "", "YAML file of candidate routes (default: built-in set)")
	fs.StringVar(&flags.Format, "format", "text", "output format: text, json or mermaid")
	fs.BoolVar(&flags.IncludeInfeasible, "include-infeasible", false, "score infeasible routes instead of dropping them")
	fs.BoolVar(&flags.StrictPriority, "strict-priority", false, "reject priorities other than fast and cheap")
	fs.BoolVar(&flags.Parallel, "parallel", false, "annotate candidates concurrently")
	fs.BoolVar(&flags.Metrics, "metrics", false, "print pipeline metrics to stderr after the run")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	proj, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	proj.IncludeInfeasible = proj.IncludeInfeasible || flags.IncludeInfeasible
	proj.StrictPriority = proj.StrictPriority || flags.StrictPriority
	proj.Parallel = proj.Parallel || flags.Parallel
	proj.Verbose = proj.Verbose || flags.Verbose
	if flags.RoutesFile != "" {
		proj.RoutesFile = flags.RoutesFile
	}

	format, err := export.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if proj.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var source agent.RouteSource = routes.NewStatic()
	if proj.RoutesFile != "" {
		source = routes.NewFile(proj.RoutesFile)
	}

	recorder := metrics.NewRecorder()
	opts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithMetrics(recorder),
	}

	if flags.ServeMCP {
		pipeline := orchestrator.NewPipeline(proj.Pipeline(), source, opts...)
		defer pipeline.Close()
		return mcptools.RunStdio(ctx, mcptools.NewPlanMCPServer(pipeline))
	}

	opts = append(opts, orchestrator.WithSink(export.NewWriter(stdout, format)))
	pipeline := orchestrator.NewPipeline(proj.Pipeline(), source, opts...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range pipeline.Progress() {
			if proj.Verbose {
				fmt.Fprintln(stderr, orchestrator.FormatProgress(ev))
			}
		}
	}()

	_, runErr := pipeline.Run(ctx, route.Request{
		Source:      flags.Source,
		Destination: flags.Destination,
		Priority:    route.ParsePriority(flags.Priority),
	})
	pipeline.Close()
	wg.Wait()

	if flags.Metrics {
		if err := recorder.WriteText(stderr); err != nil {
			return err
		}
	}
	return runErr
}
