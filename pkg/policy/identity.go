package policy

import (
	"strings"

	"github.com/exaelux/mvp-notia-engine/pkg/event"
)

// Identity evaluates identity verification events against the subject's
// verification status.
type Identity struct{}

func (Identity) ID() string { return "identity" }

func (i Identity) Evaluate(ev event.CanonicalEvent) (Verdict, bool) {
	if ev.Domain != event.DomainIdentity {
		return Verdict{}, false
	}

	if strings.TrimSpace(ev.Type) == "" {
		return Verdict{Domain: i.ID(), State: StateReject, Reason: ReasonMissingEventType}, true
	}

	if strings.TrimSpace(ev.SubjectRef) == "" {
		return Verdict{Domain: i.ID(), State: StateReject, Reason: ReasonMissingSubjectRef}, true
	}

	status, _ := ev.PayloadString("identity_status")
	switch status {
	case "verified":
		return Verdict{Domain: i.ID(), State: StateValid}, true
	case "pending":
		return Verdict{Domain: i.ID(), State: StateHold}, true
	case "revoked":
		return Verdict{Domain: i.ID(), State: StateReject}, true
	default:
		return Verdict{Domain: i.ID(), State: StateHold, Reason: ReasonUnknownIdentityStatus}, true
	}
}
