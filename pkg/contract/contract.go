// Package contract implements the structural and output gates of the decision
// pipeline as black-box pass/fail checks over embedded JSON Schemas.
package contract

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/exaelux/mvp-notia-engine/pkg/canonicalize"
)

//go:embed schemas/canonical_event.schema.json
var eventSchemaJSON string

//go:embed schemas/core_bundle.schema.json
var bundleSchemaJSON string

const (
	eventSchemaURL  = "https://notia.schemas.local/canonical-event.schema.json"
	bundleSchemaURL = "https://notia.schemas.local/core-bundle.schema.json"
)

// Result is the outcome of a gate check. Failures are data, never errors;
// a gate has no side effects and no other signal than this value.
type Result struct {
	OK     bool
	Errors []string
}

// Checker holds the compiled structural and output contracts.
type Checker struct {
	event  *jsonschema.Schema
	bundle *jsonschema.Schema
}

// NewChecker compiles the embedded schemas. Compilation failure means the
// binary ships a broken contract, so callers typically treat an error here
// as fatal at startup.
func NewChecker() (*Checker, error) {
	eventSchema, err := compile(eventSchemaURL, eventSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("contract: event schema: %w", err)
	}

	bundleSchema, err := compile(bundleSchemaURL, bundleSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("contract: bundle schema: %w", err)
	}

	return &Checker{event: eventSchema, bundle: bundleSchema}, nil
}

func compile(url, schema string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("schema load failed: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema compile failed: %w", err)
	}
	return compiled, nil
}

// CheckEvent validates raw input against the structural contract.
func (c *Checker) CheckEvent(raw interface{}) Result {
	return check(c.event, raw)
}

// CheckBundle validates the stable subset of a constructed bundle against the
// output contract. Only existence, meaning and visibility_abstract are
// inspected; any sibling fields (timestamp) are dropped before validation.
func (c *Checker) CheckBundle(bundle interface{}) Result {
	generic, err := canonicalize.ToGeneric(bundle)
	if err != nil {
		return Result{OK: false, Errors: []string{err.Error()}}
	}

	if record, ok := generic.(map[string]interface{}); ok {
		generic = map[string]interface{}{
			"existence":           record["existence"],
			"meaning":             record["meaning"],
			"visibility_abstract": record["visibility_abstract"],
		}
	}

	return validate(c.bundle, generic)
}

func check(schema *jsonschema.Schema, raw interface{}) Result {
	generic, err := canonicalize.ToGeneric(raw)
	if err != nil {
		return Result{OK: false, Errors: []string{err.Error()}}
	}
	return validate(schema, generic)
}

func validate(schema *jsonschema.Schema, v interface{}) Result {
	err := schema.Validate(v)
	if err == nil {
		return Result{OK: true}
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return Result{OK: false, Errors: []string{err.Error()}}
	}
	return Result{OK: false, Errors: flatten(ve)}
}

// flatten collects leaf causes into "<instance location> <message>" strings,
// mirroring the error-list shape both gates expose.
func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s %s", loc, ve.Message)}
	}

	var errs []string
	for _, cause := range ve.Causes {
		errs = append(errs, flatten(cause)...)
	}
	return errs
}
