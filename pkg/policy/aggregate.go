package policy

// DomainVerdict is the per-domain entry in an aggregate verdict. Evaluator
// details are intentionally not carried over; the aggregate records state and
// reason only.
type DomainVerdict struct {
	State  State  `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// AggregateVerdict reduces the applicable verdicts for one event into a
// single state plus a domain breakdown.
type AggregateVerdict struct {
	AggregatedState State                    `json:"aggregated_state"`
	Domains         map[string]DomainVerdict `json:"domains"`
}

// Aggregate folds verdicts into an AggregateVerdict.
//
// Precedence: any reject wins; otherwise any hold; otherwise valid. The empty
// input aggregates to valid with an empty (non-nil) domains map. Duplicate
// domains are last-write-wins — not expected under the fixed routing table,
// but defined for robustness.
func Aggregate(verdicts []Verdict) AggregateVerdict {
	domains := make(map[string]DomainVerdict, len(verdicts))
	hasHold := false
	hasReject := false

	for _, v := range verdicts {
		domains[v.Domain] = DomainVerdict{State: v.State, Reason: v.Reason}

		switch v.State {
		case StateReject:
			hasReject = true
		case StateHold:
			hasHold = true
		}
	}

	state := StateValid
	if hasReject {
		state = StateReject
	} else if hasHold {
		state = StateHold
	}

	return AggregateVerdict{AggregatedState: state, Domains: domains}
}
