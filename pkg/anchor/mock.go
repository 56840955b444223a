package anchor

import (
	"context"
	"time"

	"github.com/exaelux/mvp-notia-engine/pkg/bundle"
	"github.com/exaelux/mvp-notia-engine/pkg/canonicalize"
)

// NetworkMock identifies receipts produced without touching a real network.
const NetworkMock = "IOTA-MOCK"

// MockAdapter fabricates deterministic-looking receipts locally. Used in
// tests and demo runs; the transaction id format matches the real adapters so
// downstream tooling cannot tell them apart structurally.
type MockAdapter struct {
	clock func() time.Time
}

// NewMockAdapter creates a mock adapter with the wall clock.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{clock: time.Now}
}

// WithClock overrides the clock for testing.
func (m *MockAdapter) WithClock(clock func() time.Time) *MockAdapter {
	m.clock = clock
	return m
}

// Anchor fabricates a confirmed receipt for the bundle's ref. A missing ref
// still yields a well-formed receipt; the adapter has no failure path.
func (m *MockAdapter) Anchor(_ context.Context, b bundle.Bundle) (Receipt, error) {
	return m.submit(b.Ref()), nil
}

// SubmitHash fabricates a confirmed receipt for a raw hash.
func (m *MockAdapter) SubmitHash(_ context.Context, hash string) (Receipt, error) {
	return m.submit(hash), nil
}

func (m *MockAdapter) submit(ref string) Receipt {
	anchoredAt := m.clock().UTC().Format(time.RFC3339)
	digest := canonicalize.HashBytes([]byte(ref + anchoredAt))

	return Receipt{
		Network:       NetworkMock,
		TransactionID: "iota:tx:" + digest,
		AnchoredAt:    anchoredAt,
		Status:        StatusConfirmed,
	}
}
