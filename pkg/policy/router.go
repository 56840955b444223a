package policy

import "github.com/exaelux/mvp-notia-engine/pkg/event"

// routingTable is the static mapping from event domain to the ordered set of
// evaluator identifiers invoked for that domain. Read-only; no registration
// API exists on purpose.
var routingTable = map[event.Domain][]string{
	event.DomainAccess:   {"access"},
	event.DomainIdentity: {"identity"},
	event.DomainSupply:   {"supply"},
	event.DomainToken:    {"token"},
}

// Route returns the evaluator identifiers for a domain in invocation order.
// Unknown domains route to an empty list: the event is structurally legal but
// receives no policy evaluation, so aggregation resolves it to valid.
func Route(domain event.Domain) []string {
	ids, ok := routingTable[domain]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
