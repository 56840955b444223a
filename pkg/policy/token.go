package policy

import (
	"strings"

	"github.com/exaelux/mvp-notia-engine/pkg/event"
)

// Token evaluates token usage events. A token without an id cannot be traced
// and is rejected outright; an unknown standard is merely held.
type Token struct{}

func (Token) ID() string { return "token" }

func (t Token) Evaluate(ev event.CanonicalEvent) (Verdict, bool) {
	if ev.Domain != event.DomainToken {
		return Verdict{}, false
	}

	if strings.TrimSpace(ev.Type) == "" {
		return Verdict{Domain: t.ID(), State: StateReject, Reason: ReasonMissingEventType}, true
	}

	if _, ok := ev.PayloadString("token_id"); !ok {
		return Verdict{Domain: t.ID(), State: StateReject, Reason: ReasonMissingTokenID}, true
	}

	if _, ok := ev.PayloadString("token_standard"); !ok {
		return Verdict{Domain: t.ID(), State: StateHold, Reason: ReasonMissingTokenStandard}, true
	}

	if expired, ok := ev.PayloadBool("expired"); ok && expired {
		return Verdict{Domain: t.ID(), State: StateReject, Reason: ReasonTokenExpired}, true
	}

	return Verdict{Domain: t.ID(), State: StateValid}, true
}
