package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exaelux/mvp-notia-engine/pkg/policy"
)

func TestAggregate_RejectWins(t *testing.T) {
	agg := policy.Aggregate([]policy.Verdict{
		{Domain: "access", State: policy.StateValid},
		{Domain: "supply", State: policy.StateHold, Reason: policy.ReasonIncompleteSupplyEvent},
		{Domain: "token", State: policy.StateReject, Reason: policy.ReasonTokenExpired},
	})

	assert.Equal(t, policy.StateReject, agg.AggregatedState)
	assert.Len(t, agg.Domains, 3)
	assert.Equal(t, policy.ReasonTokenExpired, agg.Domains["token"].Reason)
}

func TestAggregate_HoldBeatsValid(t *testing.T) {
	agg := policy.Aggregate([]policy.Verdict{
		{Domain: "access", State: policy.StateValid},
		{Domain: "identity", State: policy.StateHold},
	})

	assert.Equal(t, policy.StateHold, agg.AggregatedState)
}

func TestAggregate_AllValid(t *testing.T) {
	agg := policy.Aggregate([]policy.Verdict{
		{Domain: "access", State: policy.StateValid},
	})

	assert.Equal(t, policy.StateValid, agg.AggregatedState)
}

func TestAggregate_EmptyIsValid(t *testing.T) {
	// Unrouted domains produce zero verdicts; no reject, no hold means valid.
	agg := policy.Aggregate(nil)

	assert.Equal(t, policy.StateValid, agg.AggregatedState)
	require.NotNil(t, agg.Domains)
	assert.Empty(t, agg.Domains)
}

func TestAggregate_LastWriteWins(t *testing.T) {
	agg := policy.Aggregate([]policy.Verdict{
		{Domain: "access", State: policy.StateReject, Reason: policy.ReasonMissingEventType},
		{Domain: "access", State: policy.StateValid},
	})

	assert.Equal(t, policy.StateValid, agg.Domains["access"].State)
	assert.Empty(t, agg.Domains["access"].Reason)
	// Precedence still sees every produced verdict, not just the surviving entry.
	assert.Equal(t, policy.StateReject, agg.AggregatedState)
}
