// Package event defines the canonical event model accepted by the decision
// pipeline. An event is owned by the caller and read-only to the engine.
package event

import "strings"

// Domain classifies the regulated domain an event belongs to. The routing
// table is keyed by this type; unknown values are structurally legal and
// simply route to no evaluators.
type Domain string

const (
	DomainAccess   Domain = "access"
	DomainIdentity Domain = "identity"
	DomainSupply   Domain = "supply"
	DomainToken    Domain = "token"
)

// CanonicalEvent is a single occurrence in one of the regulated domains.
//
// Domain-specific fields live under Payload, a single nested map. Earlier
// revisions of the event contract mixed a nested key with flat top-level
// attributes; Payload is the one authoritative shape.
type CanonicalEvent struct {
	EventID     string                 `json:"event_id"`
	Domain      Domain                 `json:"domain"`
	Type        string                 `json:"type"`
	Timestamp   string                 `json:"timestamp"`
	SubjectRef  string                 `json:"subject_ref,omitempty"`
	RelatedRefs []string               `json:"related_refs,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// PayloadString returns the payload field under key if it is a non-empty
// string after trimming, and reports whether it was usable.
func (e CanonicalEvent) PayloadString(key string) (string, bool) {
	v, ok := e.Payload[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// PayloadBool returns the payload field under key if it is a bool.
func (e CanonicalEvent) PayloadBool(key string) (bool, bool) {
	v, ok := e.Payload[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// PayloadStrings returns the payload field under key as a string slice,
// dropping non-string elements. The second result reports whether the field
// was present and actually an array.
func (e CanonicalEvent) PayloadStrings(key string) ([]string, bool) {
	v, ok := e.Payload[key]
	if !ok {
		return nil, false
	}

	switch arr := v.(type) {
	case []string:
		return arr, true
	case []interface{}:
		out := make([]string, 0, len(arr))
		for _, elem := range arr {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
