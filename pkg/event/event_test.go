package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadString(t *testing.T) {
	ev := CanonicalEvent{Payload: map[string]interface{}{
		"action": "enter",
		"blank":  "   ",
		"number": 42,
	}}

	s, ok := ev.PayloadString("action")
	assert.True(t, ok)
	assert.Equal(t, "enter", s)

	_, ok = ev.PayloadString("blank")
	assert.False(t, ok, "whitespace-only values are unusable")

	_, ok = ev.PayloadString("number")
	assert.False(t, ok)

	_, ok = ev.PayloadString("absent")
	assert.False(t, ok)
}

func TestPayloadBool(t *testing.T) {
	ev := CanonicalEvent{Payload: map[string]interface{}{
		"expired": true,
		"label":   "true",
	}}

	b, ok := ev.PayloadBool("expired")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = ev.PayloadBool("label")
	assert.False(t, ok, "string true is not bool true")

	_, ok = ev.PayloadBool("absent")
	assert.False(t, ok)
}

func TestPayloadStrings(t *testing.T) {
	ev := CanonicalEvent{Payload: map[string]interface{}{
		"logs":   []interface{}{"a", 1, "b", nil},
		"typed":  []string{"x", "y"},
		"scalar": "a",
	}}

	logs, ok := ev.PayloadStrings("logs")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, logs, "non-string elements are dropped")

	typed, ok := ev.PayloadStrings("typed")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, typed)

	_, ok = ev.PayloadStrings("scalar")
	assert.False(t, ok)

	_, ok = ev.PayloadStrings("absent")
	assert.False(t, ok)
}

func TestCanonicalEvent_JSONShape(t *testing.T) {
	ev := CanonicalEvent{
		EventID:   "evt-1",
		Domain:    DomainAccess,
		Type:      "access_attempt",
		Timestamp: "2026-02-16T00:00:00Z",
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotContains(t, decoded, "subject_ref", "empty optional fields are omitted")
	assert.NotContains(t, decoded, "related_refs")
	assert.NotContains(t, decoded, "payload")
}
