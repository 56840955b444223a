// Package anchor submits finished bundle hashes to an external immutable
// ledger. Everything here is strictly downstream of the decision pipeline:
// anchoring failure or latency is never observable inside it.
package anchor

import (
	"context"

	"github.com/exaelux/mvp-notia-engine/pkg/bundle"
)

// Status of an anchoring transaction as reported by the network.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

// Receipt is the network-specific proof that a hash was anchored.
type Receipt struct {
	Network       string `json:"network"`
	TransactionID string `json:"transaction_id"`
	AnchoredAt    string `json:"anchored_at"`
	Status        Status `json:"status"`
}

// Adapter anchors one bundle. Implementations must never mutate the bundle.
type Adapter interface {
	Anchor(ctx context.Context, b bundle.Bundle) (Receipt, error)
}

// HashSubmitter anchors a raw content hash. Batch anchoring uses this to
// submit a merkle root instead of an individual bundle ref.
type HashSubmitter interface {
	SubmitHash(ctx context.Context, hash string) (Receipt, error)
}
