package policy

import (
	"strings"

	"github.com/exaelux/mvp-notia-engine/pkg/event"
)

// Access evaluates physical access events. Supported actions are enter and
// exit; anything else is held for review rather than rejected.
type Access struct{}

func (Access) ID() string { return "access" }

func (a Access) Evaluate(ev event.CanonicalEvent) (Verdict, bool) {
	if ev.Domain != event.DomainAccess {
		return Verdict{}, false
	}

	if strings.TrimSpace(ev.Type) == "" {
		return Verdict{Domain: a.ID(), State: StateReject, Reason: ReasonMissingEventType}, true
	}

	action, _ := ev.PayloadString("action")
	if action == "enter" || action == "exit" {
		return Verdict{Domain: a.ID(), State: StateValid}, true
	}

	return Verdict{Domain: a.ID(), State: StateHold, Reason: ReasonUnsupportedAction}, true
}
