package anchor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/exaelux/mvp-notia-engine/pkg/bundle"
	"github.com/exaelux/mvp-notia-engine/pkg/canonicalize"
)

// NetworkTestnet identifies receipts from the IOTA testnet notarization
// package.
const NetworkTestnet = "IOTA-TESTNET"

// NotarizationConfig configures the testnet adapter.
type NotarizationConfig struct {
	RPCURL     string
	PrivateKey string
	PackageID  string
}

var (
	ErrMissingPrivateKey = errors.New("anchor: missing IOTA private key")
	ErrMissingPackageID  = errors.New("anchor: missing notarization package id")
)

// NotarizationAdapter anchors content hashes as locked notarizations on an
// IOTA testnet node.
type NotarizationAdapter struct {
	client *Client
	cfg    NotarizationConfig
	clock  func() time.Time
	logger *slog.Logger
}

// NewNotarizationAdapter validates the config and builds the adapter.
func NewNotarizationAdapter(cfg NotarizationConfig) (*NotarizationAdapter, error) {
	if cfg.PrivateKey == "" {
		return nil, ErrMissingPrivateKey
	}
	if cfg.PackageID == "" {
		return nil, ErrMissingPackageID
	}

	return &NotarizationAdapter{
		client: NewClient(cfg.RPCURL),
		cfg:    cfg,
		clock:  time.Now,
		logger: slog.Default().With("component", "anchor"),
	}, nil
}

// WithClock overrides the clock for testing.
func (a *NotarizationAdapter) WithClock(clock func() time.Time) *NotarizationAdapter {
	a.clock = clock
	return a
}

// Anchor derives the compliance proof content from the bundle and submits
// its hash. The bundle itself never leaves the process; only the hash does.
func (a *NotarizationAdapter) Anchor(ctx context.Context, b bundle.Bundle) (Receipt, error) {
	anchoredAt := a.clock().UTC().Format(time.RFC3339)

	contentHash, err := canonicalize.CanonicalHash(map[string]interface{}{
		"bundle_hash": b.Ref(),
		"subject_ref": b.Meaning.Event.SubjectRef,
		"result":      b.Meaning.AggregatedState,
		"timestamp":   anchoredAt,
	})
	if err != nil {
		return Receipt{}, err
	}

	return a.submit(ctx, contentHash, anchoredAt)
}

// SubmitHash anchors a raw content hash (e.g. a batch merkle root).
func (a *NotarizationAdapter) SubmitHash(ctx context.Context, hash string) (Receipt, error) {
	return a.submit(ctx, hash, a.clock().UTC().Format(time.RFC3339))
}

func (a *NotarizationAdapter) submit(ctx context.Context, contentHash, anchoredAt string) (Receipt, error) {
	var result struct {
		Digest string `json:"digest"`
		Status string `json:"status"`
	}

	err := a.client.Call(ctx, "notarization_createLocked", []interface{}{
		map[string]interface{}{
			"package_id":            a.cfg.PackageID,
			"state":                 contentHash,
			"immutable_description": "notia compliance proof",
		},
	}, &result)
	if err != nil {
		return Receipt{}, err
	}

	a.logger.Info("anchored content hash",
		"digest", result.Digest,
		"status", result.Status)

	return Receipt{
		Network:       NetworkTestnet,
		TransactionID: result.Digest,
		AnchoredAt:    anchoredAt,
		Status:        parseStatus(result.Status),
	}, nil
}

func parseStatus(s string) Status {
	switch s {
	case "success", "confirmed":
		return StatusConfirmed
	case "pending":
		return StatusPending
	case "failure", "failed":
		return StatusFailed
	default:
		return StatusUnknown
	}
}
