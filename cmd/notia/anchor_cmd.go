package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/exaelux/mvp-notia-engine/pkg/anchor"
	"github.com/exaelux/mvp-notia-engine/pkg/config"
	"github.com/exaelux/mvp-notia-engine/pkg/pipeline"
)

// runAnchorCmd implements `notia anchor`: evaluate an event and anchor the
// resulting bundle ref on the configured network. Only the content hash
// leaves the process.
//
// Exit codes:
//
//	0 = bundle produced and anchored
//	1 = event rejected by a gate
//	2 = runtime or network error
func runAnchorCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("anchor", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	cfg := config.Load()

	var (
		eventPath string
		previous  string
		network   string
	)

	cmd.StringVar(&eventPath, "event", "", "Path to event JSON file, or - for stdin (REQUIRED)")
	cmd.StringVar(&previous, "previous", "", "Ref of the previous bundle in the chain")
	cmd.StringVar(&network, "network", cfg.Anchoring.Network, "Anchoring network (mock|testnet)")

	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if eventPath == "" {
		_, _ = fmt.Fprintln(stderr, "Error: --event is required")
		return 2
	}

	ev, err := readEvent(eventPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	adapter, err := buildAdapter(network, cfg.Anchoring)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	p, err := pipeline.New()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	outcome := p.Run(context.Background(), ev, pipeline.Options{
		PreviousBundleRef: previous,
		MaxDepth:          cfg.MaxAncestryDepth,
	})
	if outcome.Kind != pipeline.KindSemanticBundle {
		data, _ := json.MarshalIndent(outcome, "", "  ")
		_, _ = fmt.Fprintln(stdout, string(data))
		return 1
	}

	receipt, err := adapter.Anchor(context.Background(), *outcome.Bundle)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: anchoring failed: %v\n", err)
		return 2
	}

	log := anchor.NewReceiptLog()
	if _, err := log.Append(outcome.Bundle.Meaning.BundleRef, receipt); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	data, err := json.MarshalIndent(struct {
		BundleRef string         `json:"bundle_ref"`
		Receipt   anchor.Receipt `json:"receipt"`
		LogHead   string         `json:"log_head"`
	}{outcome.Bundle.Meaning.BundleRef, receipt, log.Head()}, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	_, _ = fmt.Fprintln(stdout, string(data))
	return 0
}

func buildAdapter(network string, cfg config.AnchoringConfig) (anchor.Adapter, error) {
	switch network {
	case "mock":
		return anchor.NewMockAdapter(), nil
	case "testnet":
		return anchor.NewNotarizationAdapter(anchor.NotarizationConfig{
			RPCURL:     cfg.RPCURL,
			PrivateKey: cfg.PrivateKey,
			PackageID:  cfg.PackageID,
		})
	default:
		return nil, fmt.Errorf("unknown anchoring network %q", network)
	}
}
