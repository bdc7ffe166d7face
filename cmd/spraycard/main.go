package main

import (
	"fmt"
	"io"
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runServe(nil, stderr)
	}

	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "spraycard %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "serve":
		return runServe(args[1:], stderr)
	case "analyze":
		return runAnalyze(args[1:], stdout, stderr)
	case "http":
		return runHTTP(args[1:], stderr)
	case "init-config":
		return runInitConfig(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "spraycard - spray card coverage analysis")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  spraycard [serve] [-config file]      Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  spraycard analyze [flags] images...    Analyze card images")
	fmt.Fprintln(w, "  spraycard http [-config file] [-addr a] Serve the HTTP API")
	fmt.Fprintln(w, "  spraycard init-config path             Write a default config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Analyze flags:")
	fmt.Fprintln(w, "  -config file    YAML configuration")
	fmt.Fprintln(w, "  -sections n     Number of vertical sections (default from config, 10)")
	fmt.Fprintln(w, "  -overlay        Write <name>_analyzed.<ext> next to each image")
	fmt.Fprintln(w, "  -chart          Write <name>_analyzed_chart.png next to each image")
	fmt.Fprintln(w, "  -workers n      Images analyzed concurrently")
	fmt.Fprintln(w, "  -json           Print results as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  SPRAYCARD_LOG_LEVEL=debug    Log level (debug, info, warn, error)")
	fmt.Fprintln(w, "  SPRAYCARD_SECTIONS=10        Section count override")
	fmt.Fprintln(w, "  SPRAYCARD_HTTP_ADDR=:8080    HTTP listen address override")
}
