package pipeline

import "github.com/exaelux/mvp-notia-engine/pkg/bundle"

// Kind tags the three pipeline outcomes.
type Kind string

const (
	// KindStructuralFail: raw input does not conform to the input contract;
	// no evaluator ran.
	KindStructuralFail Kind = "structural_fail"
	// KindCoreSchemaFail: the constructed bundle failed the output contract
	// and was discarded.
	KindCoreSchemaFail Kind = "core_schema_fail"
	// KindSemanticBundle: success, the outcome carries the bundle.
	KindSemanticBundle Kind = "semantic_bundle"
)

// Outcome is the tagged result of one pipeline invocation. Failures are data;
// the pipeline never returns a bundle alongside errors.
type Outcome struct {
	Kind   Kind           `json:"type"`
	Errors []string       `json:"errors,omitempty"`
	Bundle *bundle.Bundle `json:"bundle,omitempty"`
}
