// Package policy contains the per-domain policy evaluators, the static
// domain routing table and the verdict aggregator. Every evaluator is a pure,
// total function: each path returns a typed result and nothing ever panics or
// errors out of band.
package policy

import "github.com/exaelux/mvp-notia-engine/pkg/event"

// State is a policy verdict state. Reject has the highest precedence during
// aggregation, valid the lowest.
type State string

const (
	StateValid  State = "valid"
	StateHold   State = "hold"
	StateReject State = "reject"
)

// Reason codes surfaced on verdicts. Stable identifiers; downstream audit
// tooling matches on them.
const (
	ReasonMissingEventType      = "missing_event_type"
	ReasonUnsupportedAction     = "unsupported_action"
	ReasonMissingSubjectRef     = "missing_subject_ref"
	ReasonUnknownIdentityStatus = "unknown_identity_status"
	ReasonMissingObjectRef      = "missing_object_ref"
	ReasonMissingRequiredLogs   = "missing_required_logs"
	ReasonIncompleteSupplyEvent = "incomplete_supply_event"
	ReasonMissingTokenID        = "missing_token_id"
	ReasonMissingTokenStandard  = "missing_token_standard"
	ReasonTokenExpired          = "token_expired"
)

// Verdict is the result of one applicable evaluator for one event.
// Never mutated after creation.
type Verdict struct {
	Domain  string                 `json:"domain"`
	State   State                  `json:"state"`
	Reason  string                 `json:"reason,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Evaluator is the single-method capability every domain evaluator
// implements. The second result is false when the event is outside the
// evaluator's domain (not applicable); the orchestrator drops such results.
//
// The set of implementations is closed: Access, Identity, Supply, Token.
// ForID resolves routing-table identifiers onto it.
type Evaluator interface {
	ID() string
	Evaluate(ev event.CanonicalEvent) (Verdict, bool)
}

// ForID maps a routing-table identifier to its evaluator. The mapping is
// static so the routing table and the evaluator set stay checkable together.
func ForID(id string) (Evaluator, bool) {
	switch id {
	case "access":
		return Access{}, true
	case "identity":
		return Identity{}, true
	case "supply":
		return Supply{}, true
	case "token":
		return Token{}, true
	default:
		return nil, false
	}
}
