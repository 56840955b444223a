package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exaelux/mvp-notia-engine/pkg/event"
	"github.com/exaelux/mvp-notia-engine/pkg/policy"
)

func supplyEvent(payload map[string]interface{}) event.CanonicalEvent {
	return event.CanonicalEvent{
		EventID:   "evt-supply-1",
		Domain:    event.DomainSupply,
		Type:      "custody_transfer",
		Timestamp: "2026-02-14T10:00:00Z",
		Payload:   payload,
	}
}

func TestAccess_EnterIsValid(t *testing.T) {
	v, ok := policy.Access{}.Evaluate(event.CanonicalEvent{
		EventID: "evt-1", Domain: event.DomainAccess, Type: "access_attempt",
		Payload: map[string]interface{}{"action": "enter"},
	})

	require.True(t, ok)
	assert.Equal(t, policy.StateValid, v.State)
	assert.Empty(t, v.Reason)
}

func TestAccess_UnsupportedActionHolds(t *testing.T) {
	for _, payload := range []map[string]interface{}{
		{"action": "loiter"},
		{"action": 42},
		{},
		nil,
	} {
		v, ok := policy.Access{}.Evaluate(event.CanonicalEvent{
			EventID: "evt-1", Domain: event.DomainAccess, Type: "access_attempt",
			Payload: payload,
		})

		require.True(t, ok)
		assert.Equal(t, policy.StateHold, v.State)
		assert.Equal(t, policy.ReasonUnsupportedAction, v.Reason)
	}
}

func TestAccess_MissingTypeRejects(t *testing.T) {
	v, ok := policy.Access{}.Evaluate(event.CanonicalEvent{
		EventID: "evt-1", Domain: event.DomainAccess, Type: "  ",
	})

	require.True(t, ok)
	assert.Equal(t, policy.StateReject, v.State)
	assert.Equal(t, policy.ReasonMissingEventType, v.Reason)
}

func TestAccess_OtherDomainNotApplicable(t *testing.T) {
	_, ok := policy.Access{}.Evaluate(event.CanonicalEvent{
		EventID: "evt-1", Domain: event.DomainToken, Type: "mint",
	})

	assert.False(t, ok)
}

func TestIdentity_StatusTable(t *testing.T) {
	cases := []struct {
		status string
		state  policy.State
		reason string
	}{
		{"verified", policy.StateValid, ""},
		{"pending", policy.StateHold, ""},
		{"revoked", policy.StateReject, ""},
		{"suspended", policy.StateHold, policy.ReasonUnknownIdentityStatus},
		{"", policy.StateHold, policy.ReasonUnknownIdentityStatus},
	}

	for _, tc := range cases {
		ev := event.CanonicalEvent{
			EventID: "evt-1", Domain: event.DomainIdentity, Type: "identity_check",
			SubjectRef: "did:example:123",
		}
		if tc.status != "" {
			ev.Payload = map[string]interface{}{"identity_status": tc.status}
		}

		v, ok := policy.Identity{}.Evaluate(ev)

		require.True(t, ok, "status %q", tc.status)
		assert.Equal(t, tc.state, v.State, "status %q", tc.status)
		assert.Equal(t, tc.reason, v.Reason, "status %q", tc.status)
	}
}

func TestIdentity_MissingSubjectRefRejects(t *testing.T) {
	v, ok := policy.Identity{}.Evaluate(event.CanonicalEvent{
		EventID: "evt-1", Domain: event.DomainIdentity, Type: "identity_check",
		Payload: map[string]interface{}{"identity_status": "verified"},
	})

	require.True(t, ok)
	assert.Equal(t, policy.StateReject, v.State)
	assert.Equal(t, policy.ReasonMissingSubjectRef, v.Reason)
}

func TestSupply_AllLogsValid(t *testing.T) {
	logs := make([]interface{}, len(policy.RequiredSupplyLogs))
	for i, l := range policy.RequiredSupplyLogs {
		logs[i] = l
	}

	v, ok := policy.Supply{}.Evaluate(supplyEvent(map[string]interface{}{
		"object_ref": "crate-7",
		"logs":       logs,
	}))

	require.True(t, ok)
	assert.Equal(t, policy.StateValid, v.State)
	assert.Nil(t, v.Details)
}

func TestSupply_OneMissingLogHolds(t *testing.T) {
	// Drop exactly one required entry; details must list exactly that gap.
	logs := []interface{}{}
	for _, l := range policy.RequiredSupplyLogs {
		if l == "seal_integrity_check" {
			continue
		}
		logs = append(logs, l)
	}

	v, ok := policy.Supply{}.Evaluate(supplyEvent(map[string]interface{}{
		"object_ref": "crate-7",
		"logs":       logs,
	}))

	require.True(t, ok)
	assert.Equal(t, policy.StateHold, v.State)
	assert.Equal(t, policy.ReasonMissingRequiredLogs, v.Reason)
	require.NotNil(t, v.Details)
	assert.Equal(t, []string{"seal_integrity_check"}, v.Details["missing_logs"])
}

func TestSupply_MissingLogsPreserveRequiredOrder(t *testing.T) {
	v, ok := policy.Supply{}.Evaluate(supplyEvent(map[string]interface{}{
		"object_ref": "crate-7",
		"logs":       []interface{}{"weight_verification_scan"},
	}))

	require.True(t, ok)
	require.NotNil(t, v.Details)
	assert.Equal(t, []string{
		"cold_chain_temperature_log",
		"geo_tracking_log",
		"humidity_sensor_data",
		"seal_integrity_check",
		"xray_scan_result",
	}, v.Details["missing_logs"])
}

func TestSupply_AbsentLogsHold(t *testing.T) {
	v, ok := policy.Supply{}.Evaluate(supplyEvent(map[string]interface{}{
		"object_ref": "crate-7",
	}))

	require.True(t, ok)
	assert.Equal(t, policy.StateHold, v.State)
	assert.Equal(t, policy.ReasonIncompleteSupplyEvent, v.Reason)
}

func TestSupply_MalformedLogsHold(t *testing.T) {
	v, ok := policy.Supply{}.Evaluate(supplyEvent(map[string]interface{}{
		"object_ref": "crate-7",
		"logs":       "not-an-array",
	}))

	require.True(t, ok)
	assert.Equal(t, policy.StateHold, v.State)
	assert.Equal(t, policy.ReasonIncompleteSupplyEvent, v.Reason)
}

func TestSupply_MissingObjectRefRejects(t *testing.T) {
	v, ok := policy.Supply{}.Evaluate(supplyEvent(map[string]interface{}{
		"logs": []interface{}{},
	}))

	require.True(t, ok)
	assert.Equal(t, policy.StateReject, v.State)
	assert.Equal(t, policy.ReasonMissingObjectRef, v.Reason)
}

func TestToken_RuleTable(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]interface{}
		state   policy.State
		reason  string
	}{
		{"missing id", map[string]interface{}{}, policy.StateReject, policy.ReasonMissingTokenID},
		{"missing standard", map[string]interface{}{"token_id": "tok-1"}, policy.StateHold, policy.ReasonMissingTokenStandard},
		{"expired", map[string]interface{}{"token_id": "tok-1", "token_standard": "erc721", "expired": true}, policy.StateReject, policy.ReasonTokenExpired},
		{"clean", map[string]interface{}{"token_id": "tok-1", "token_standard": "erc721"}, policy.StateValid, ""},
		{"not expired", map[string]interface{}{"token_id": "tok-1", "token_standard": "erc721", "expired": false}, policy.StateValid, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := policy.Token{}.Evaluate(event.CanonicalEvent{
				EventID: "evt-1", Domain: event.DomainToken, Type: "token_usage",
				Payload: tc.payload,
			})

			require.True(t, ok)
			assert.Equal(t, tc.state, v.State)
			assert.Equal(t, tc.reason, v.Reason)
		})
	}
}

func TestForID_ClosedSet(t *testing.T) {
	for _, id := range []string{"access", "identity", "supply", "token"} {
		e, ok := policy.ForID(id)
		require.True(t, ok)
		assert.Equal(t, id, e.ID())
	}

	_, ok := policy.ForID("carbon")
	assert.False(t, ok)
}
