// Package pipeline sequences the five-stage decision pipeline: structural
// gate, domain routing, policy evaluation, verdict aggregation, bundle
// construction and output-contract gate.
package pipeline

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/exaelux/mvp-notia-engine/pkg/bundle"
	"github.com/exaelux/mvp-notia-engine/pkg/contract"
	"github.com/exaelux/mvp-notia-engine/pkg/event"
	"github.com/exaelux/mvp-notia-engine/pkg/policy"
)

// Options carries the optional ancestry parameters of one invocation.
type Options struct {
	PreviousBundleRef   string
	AdditionalAncestors []string
	// MaxDepth bounds the ancestry chain; the zero value means
	// bundle.DefaultMaxDepth.
	MaxDepth int
}

// Pipeline is the orchestrator. It holds only compiled contracts and a
// builder; no state survives an invocation.
type Pipeline struct {
	checker *contract.Checker
	builder *bundle.Builder
	tracer  trace.Tracer
}

// New compiles the gate contracts and returns a ready pipeline.
func New() (*Pipeline, error) {
	checker, err := contract.NewChecker()
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		checker: checker,
		builder: bundle.NewBuilder(),
		tracer:  otel.Tracer("notia/pipeline"),
	}, nil
}

// WithClock overrides the bundle construction clock for testing.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.builder.WithClock(clock)
	return p
}

// Run executes one pipeline invocation. It never blocks on anything external
// and never panics; every failure surfaces as an Outcome.
func (p *Pipeline) Run(ctx context.Context, ev event.CanonicalEvent, opts Options) Outcome {
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("notia.event.domain", string(ev.Domain)),
			attribute.String("notia.event.id", ev.EventID),
		))
	defer span.End()

	outcome := p.run(ctx, ev, opts)
	span.SetAttributes(attribute.String("notia.outcome", string(outcome.Kind)))
	return outcome
}

func (p *Pipeline) run(ctx context.Context, ev event.CanonicalEvent, opts Options) Outcome {
	if structural := p.checker.CheckEvent(ev); !structural.OK {
		return Outcome{Kind: KindStructuralFail, Errors: structural.Errors}
	}

	verdicts := p.evaluate(ctx, ev, policy.Route(ev.Domain))
	aggregate := policy.Aggregate(verdicts)

	b, err := p.builder.Build(ev, aggregate, bundle.Options{
		PreviousBundleRef:   opts.PreviousBundleRef,
		AdditionalAncestors: opts.AdditionalAncestors,
		MaxDepth:            opts.MaxDepth,
	})
	if err != nil {
		return Outcome{Kind: KindCoreSchemaFail, Errors: []string{err.Error()}}
	}

	if output := p.checker.CheckBundle(b); !output.OK {
		return Outcome{Kind: KindCoreSchemaFail, Errors: output.Errors}
	}

	return Outcome{Kind: KindSemanticBundle, Bundle: &b}
}

// evaluate runs the routed evaluators concurrently and joins results back
// into routing order. The aggregator must see verdicts in deterministic
// routing order, so the join is index-based, never append-as-completed.
func (p *Pipeline) evaluate(_ context.Context, ev event.CanonicalEvent, routes []string) []policy.Verdict {
	type slot struct {
		verdict    policy.Verdict
		applicable bool
	}
	slots := make([]slot, len(routes))

	var wg sync.WaitGroup
	for i, id := range routes {
		evaluator, ok := policy.ForID(id)
		if !ok {
			// Routing table entries are statically checked against the
			// evaluator set; an unresolved id is simply skipped.
			continue
		}

		wg.Add(1)
		go func(i int, e policy.Evaluator) {
			defer wg.Done()
			v, applicable := e.Evaluate(ev)
			slots[i] = slot{verdict: v, applicable: applicable}
		}(i, evaluator)
	}
	wg.Wait()

	verdicts := make([]policy.Verdict, 0, len(slots))
	for _, s := range slots {
		if s.applicable {
			verdicts = append(verdicts, s.verdict)
		}
	}
	return verdicts
}
