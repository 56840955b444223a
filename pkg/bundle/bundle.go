// Package bundle constructs tamper-evident, content-addressed decision
// records. A bundle is a pure value: the builder retains nothing and equal
// logical inputs always produce equal bundle refs.
package bundle

import (
	"time"

	"github.com/exaelux/mvp-notia-engine/pkg/canonicalize"
	"github.com/exaelux/mvp-notia-engine/pkg/event"
	"github.com/exaelux/mvp-notia-engine/pkg/policy"
)

// DefaultMaxDepth bounds the ancestry chain when the caller does not ask for
// a specific depth.
const DefaultMaxDepth = 10

// VisibilityRestricted is the fixed visibility abstract stamped on bundles.
const VisibilityRestricted = "restricted"

// Meaning is the hashed core of a bundle. BundleRef is the SHA-256 hex digest
// of the canonical encoding of this struct with BundleRef itself held empty.
type Meaning struct {
	BundleRef       string                          `json:"bundle_ref"`
	AggregatedState policy.State                    `json:"aggregated_state"`
	Domains         map[string]policy.DomainVerdict `json:"domains"`
	DerivedFrom     []string                        `json:"derived_from"`
	Event           event.CanonicalEvent            `json:"event"`
}

// Bundle is the immutable decision record returned to the caller. Timestamp
// is captured at construction time and sits outside the hash preimage.
type Bundle struct {
	Existence          bool    `json:"existence"`
	Meaning            Meaning `json:"meaning"`
	VisibilityAbstract string  `json:"visibility_abstract"`
	Timestamp          string  `json:"timestamp"`
}

// Ref returns the bundle's content hash.
func (b Bundle) Ref() string {
	return b.Meaning.BundleRef
}

// Options controls ancestry assembly during Build.
type Options struct {
	// PreviousBundleRef links this bundle to its immediate predecessor.
	// Always first in derived_from when set.
	PreviousBundleRef string
	// AdditionalAncestors follow the previous ref in given order, subject to
	// dedup and depth bounding.
	AdditionalAncestors []string
	// MaxDepth bounds len(derived_from). The zero value means
	// DefaultMaxDepth; pass a negative value to request no ancestry at all.
	MaxDepth int
}

// Builder constructs bundles. The clock is injectable for tests; it feeds the
// construction timestamp only, never the hash preimage.
type Builder struct {
	clock func() time.Time
}

// NewBuilder creates a bundle builder with the wall clock.
func NewBuilder() *Builder {
	return &Builder{clock: time.Now}
}

// WithClock overrides the clock for testing.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// Build canonicalizes event + aggregate + ancestry, computes the content
// hash and emits the finished bundle.
func (b *Builder) Build(ev event.CanonicalEvent, agg policy.AggregateVerdict, opts Options) (Bundle, error) {
	derivedFrom := assembleAncestry(opts)

	domains := agg.Domains
	if domains == nil {
		domains = map[string]policy.DomainVerdict{}
	}

	preimage := Meaning{
		BundleRef:       "",
		AggregatedState: agg.AggregatedState,
		Domains:         domains,
		DerivedFrom:     derivedFrom,
		Event:           ev,
	}

	ref, err := canonicalize.CanonicalHash(preimage)
	if err != nil {
		return Bundle{}, err
	}

	meaning := preimage
	meaning.BundleRef = ref

	return Bundle{
		Existence:          true,
		Meaning:            meaning,
		VisibilityAbstract: VisibilityRestricted,
		Timestamp:          b.clock().UTC().Format(time.RFC3339),
	}, nil
}

// assembleAncestry collects the previous ref (first) and additional ancestors
// (in given order), deduplicates preserving first-seen order, and truncates to
// the effective depth. A requested depth below 1 is coerced to 1 when a
// previous ref exists so the immediate parent link is never silently dropped.
func assembleAncestry(opts Options) []string {
	candidates := make([]string, 0, 1+len(opts.AdditionalAncestors))
	if opts.PreviousBundleRef != "" {
		candidates = append(candidates, opts.PreviousBundleRef)
	}
	candidates = append(candidates, opts.AdditionalAncestors...)

	seen := make(map[string]bool, len(candidates))
	deduplicated := make([]string, 0, len(candidates))
	for _, ancestor := range candidates {
		if ancestor == "" || seen[ancestor] {
			continue
		}
		seen[ancestor] = true
		deduplicated = append(deduplicated, ancestor)
	}

	depth := opts.MaxDepth
	if depth == 0 {
		depth = DefaultMaxDepth
	}
	if opts.PreviousBundleRef != "" && depth < 1 {
		depth = 1
	}
	if depth < 0 {
		depth = 0
	}
	if len(deduplicated) > depth {
		deduplicated = deduplicated[:depth]
	}

	return deduplicated
}
