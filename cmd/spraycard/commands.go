package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/ironsheep/spraycard-mcp/internal/config"
	"github.com/ironsheep/spraycard-mcp/internal/httpapi"
	"github.com/ironsheep/spraycard-mcp/internal/logging"
	"github.com/ironsheep/spraycard-mcp/internal/pipeline"
	"github.com/ironsheep/spraycard-mcp/internal/server"
)

// loadConfig reads the optional config file, applies environment
// overrides and validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	log := logging.NewConsole(cfg.Log.Level)
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("spraycard MCP server starting")

	ctx, cancel := signalContext()
	defer cancel()

	if err := server.New(cfg, log, Version).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}

func runHTTP(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("http", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	addr := fs.String("addr", "", "listen address (default from config, :8080)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	log := logging.NewConsole(cfg.Log.Level)
	ctx, cancel := signalContext()
	defer cancel()

	if err := httpapi.ListenAndServe(ctx, cfg.HTTP.Addr, httpapi.NewHandler(cfg, log)); err != nil {
		log.Error().Err(err).Msg("HTTP server error")
		return 1
	}
	return 0
}

func runInitConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: spraycard init-config path")
		return 2
	}
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(stderr, "%s already exists\n", path)
		return 1
	}
	if err := config.CreateDefaultConfigFile(path); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote default configuration to %s\n", path)
	return 0
}

func runAnalyze(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	sections := fs.Int("sections", 0, "number of vertical sections")
	overlay := fs.Bool("overlay", false, "write the annotated mask next to each image")
	chart := fs.Bool("chart", false, "write a coverage bar chart next to each image")
	workers := fs.Int("workers", 0, "images analyzed concurrently")
	asJSON := fs.Bool("json", false, "print results as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	// Flags given on the command line win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sections":
			cfg.Analysis.SectionCount = *sections
		case "overlay":
			cfg.Output.WriteOverlay = *overlay
		case "chart":
			cfg.Output.WriteChart = *chart
		case "workers":
			cfg.Batch.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "analyze: no images given")
		return 2
	}

	log := logging.NewConsole(cfg.Log.Level)
	ctx, cancel := signalContext()
	defer cancel()

	runner := pipeline.NewRunner(log, cfg.Batch.Workers)
	results, err := runner.AnalyzeFiles(ctx, paths, pipeline.OptionsFromConfig(cfg))
	if err != nil {
		log.Error().Err(err).Msg("analysis interrupted")
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(stderr, "failed to encode results: %v\n", err)
			return 1
		}
	} else {
		printTable(stdout, results)
	}

	for _, res := range results {
		if res == nil || res.Err != nil {
			return 1
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

// printTable writes one row per card: overall figures followed by the
// per-section coverage, left to right.
func printTable(w io.Writer, results []*pipeline.FileResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IMAGE\tTHRESHOLD\tOVERALL %\tMEAN %\tCV %\tSECTIONS %")
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\terror: %v\n", res.Path, res.Err)
			continue
		}
		sum := res.Report.Summary
		cov := make([]string, len(res.Report.Coverage))
		for i, c := range res.Report.Coverage {
			cov[i] = fmt.Sprintf("%.1f", c)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%.1f\t%s\n",
			res.Path, res.Threshold, sum.Overall, sum.Mean, sum.CV, strings.Join(cov, " "))
	}
	tw.Flush()
}
