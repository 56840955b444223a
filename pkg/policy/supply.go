package policy

import (
	"strings"

	"github.com/exaelux/mvp-notia-engine/pkg/event"
)

// RequiredSupplyLogs is the fixed set of log categories a custody event must
// carry to clear supply-chain policy. Order matters: missing_logs details
// preserve this order.
var RequiredSupplyLogs = []string{
	"cold_chain_temperature_log",
	"geo_tracking_log",
	"weight_verification_scan",
	"humidity_sensor_data",
	"seal_integrity_check",
	"xray_scan_result",
}

// Supply evaluates supply-chain custody events against the required-logs set.
type Supply struct{}

func (Supply) ID() string { return "supply" }

func (s Supply) Evaluate(ev event.CanonicalEvent) (Verdict, bool) {
	if ev.Domain != event.DomainSupply {
		return Verdict{}, false
	}

	if strings.TrimSpace(ev.Type) == "" {
		return Verdict{Domain: s.ID(), State: StateReject, Reason: ReasonMissingEventType}, true
	}

	if _, ok := ev.PayloadString("object_ref"); !ok {
		return Verdict{Domain: s.ID(), State: StateReject, Reason: ReasonMissingObjectRef}, true
	}

	logs, ok := ev.PayloadStrings("logs")
	if !ok {
		// Absent or malformed logs degrade to hold, never abort the pipeline.
		return Verdict{Domain: s.ID(), State: StateHold, Reason: ReasonIncompleteSupplyEvent}, true
	}

	present := make(map[string]bool, len(logs))
	for _, entry := range logs {
		present[entry] = true
	}

	var missing []string
	for _, required := range RequiredSupplyLogs {
		if !present[required] {
			missing = append(missing, required)
		}
	}

	if len(missing) == 0 {
		return Verdict{Domain: s.ID(), State: StateValid}, true
	}

	return Verdict{
		Domain: s.ID(),
		State:  StateHold,
		Reason: ReasonMissingRequiredLogs,
		Details: map[string]interface{}{
			"missing_logs": missing,
		},
	}, true
}
