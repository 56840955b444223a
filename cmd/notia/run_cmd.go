package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/exaelux/mvp-notia-engine/pkg/config"
	"github.com/exaelux/mvp-notia-engine/pkg/event"
	"github.com/exaelux/mvp-notia-engine/pkg/pipeline"
)

// runRunCmd implements `notia run`: evaluate one canonical event and emit
// the outcome as JSON.
//
// Exit codes:
//
//	0 = semantic bundle produced
//	1 = event rejected by a gate (structural or core schema)
//	2 = runtime error
func runRunCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("run", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		eventPath string
		previous  string
		ancestors string
		maxDepth  int
	)

	cmd.StringVar(&eventPath, "event", "", "Path to event JSON file, or - for stdin (REQUIRED)")
	cmd.StringVar(&previous, "previous", "", "Ref of the previous bundle in the chain")
	cmd.StringVar(&ancestors, "ancestors", "", "Comma-separated additional ancestor refs")
	cmd.IntVar(&maxDepth, "max-depth", config.Load().MaxAncestryDepth, "Ancestry depth bound (0 = default)")

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

	p, err := pipeline.New()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	outcome := p.Run(context.Background(), ev, pipeline.Options{
		PreviousBundleRef:   previous,
		AdditionalAncestors: splitRefs(ancestors),
		MaxDepth:            maxDepth,
	})

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	_, _ = fmt.Fprintln(stdout, string(data))

	if outcome.Kind != pipeline.KindSemanticBundle {
		return 1
	}
	return 0
}

func readEvent(path string) (event.CanonicalEvent, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return event.CanonicalEvent{}, fmt.Errorf("read event: %w", err)
	}

	var ev event.CanonicalEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return event.CanonicalEvent{}, fmt.Errorf("parse event: %w", err)
	}
	return ev, nil
}

func splitRefs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	refs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			refs = append(refs, p)
		}
	}
	return refs
}
