package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/exaelux/mvp-notia-engine/pkg/config"
	"github.com/exaelux/mvp-notia-engine/pkg/observability"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	setupLogging(stderr, cfg.LogLevel)

	if provider := setupTelemetry(cfg.Telemetry); provider != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = provider.Shutdown(ctx)
		}()
	}

	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "run":
		return runRunCmd(args[2:], stdout, stderr)
	case "chain":
		return runChainCmd(args[2:], stdout, stderr)
	case "anchor":
		return runAnchorCmd(args[2:], stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

func setupLogging(w io.Writer, logLevel string) {
	level := slog.LevelInfo
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// setupTelemetry starts OTLP trace export when enabled; pipeline spans are
// no-ops otherwise.
func setupTelemetry(cfg config.TelemetryConfig) *observability.Provider {
	if !cfg.Enabled {
		return nil
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.SampleRate = cfg.SampleRate
	obsCfg.Insecure = cfg.Insecure
	if cfg.Endpoint != "" {
		obsCfg.OTLPEndpoint = cfg.Endpoint
	}

	provider, err := observability.New(context.Background(), obsCfg)
	if err != nil {
		slog.Warn("telemetry disabled", "error", err)
		return nil
	}
	return provider
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notia - compliance decision engine")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  notia <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "COMMANDS:")
	fmt.Fprintln(w, "  run      Evaluate one event and emit the outcome (--event, --previous)")
	fmt.Fprintln(w, "  chain    Evaluate a linked chain of generated events (--count, --domain)")
	fmt.Fprintln(w, "  anchor   Evaluate an event and anchor the bundle ref (--event, --network)")
	fmt.Fprintln(w, "  help     Show this help")
	fmt.Fprintln(w, "")
}
