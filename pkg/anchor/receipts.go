package anchor

import (
	"fmt"
	"sync"
	"time"

	"github.com/exaelux/mvp-notia-engine/pkg/canonicalize"
)

// ReceiptEntry is an immutable, hash-chained record of one anchoring receipt.
type ReceiptEntry struct {
	Sequence    uint64    `json:"sequence"`
	BundleRef   string    `json:"bundle_ref"`
	Receipt     Receipt   `json:"receipt"`
	ContentHash string    `json:"content_hash"`
	PrevHash    string    `json:"prev_hash"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReceiptLog is an in-memory, append-only, hash-chained log of anchoring
// receipts. Bundles themselves are never retained; the log holds only refs
// and network receipts so an operator can audit what was anchored when.
type ReceiptLog struct {
	mu       sync.RWMutex
	entries  []ReceiptEntry
	headHash string
	clock    func() time.Time
}

// NewReceiptLog creates an empty receipt log.
func NewReceiptLog() *ReceiptLog {
	return &ReceiptLog{
		entries:  make([]ReceiptEntry, 0),
		headHash: "genesis",
		clock:    time.Now,
	}
}

// WithClock overrides the clock for testing.
func (l *ReceiptLog) WithClock(clock func() time.Time) *ReceiptLog {
	l.clock = clock
	return l
}

// Append records a receipt for a bundle ref. Returns the sequence number.
func (l *ReceiptLog) Append(bundleRef string, r Receipt) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := uint64(len(l.entries)) + 1

	contentHash, err := entryHash(seq, bundleRef, r, l.headHash)
	if err != nil {
		return 0, fmt.Errorf("receipt log: hash entry: %w", err)
	}

	entry := ReceiptEntry{
		Sequence:    seq,
		BundleRef:   bundleRef,
		Receipt:     r,
		ContentHash: contentHash,
		PrevHash:    l.headHash,
		Timestamp:   l.clock().UTC(),
	}

	l.entries = append(l.entries, entry)
	l.headHash = contentHash
	return seq, nil
}

// Entries returns a copy of all entries in append order.
func (l *ReceiptLog) Entries() []ReceiptEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ReceiptEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Head returns the current chain head hash.
func (l *ReceiptLog) Head() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.headHash
}

// Verify recomputes the chain and reports the first inconsistency.
func (l *ReceiptLog) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prev := "genesis"
	for i, entry := range l.entries {
		if entry.PrevHash != prev {
			return fmt.Errorf("receipt log: entry %d prev hash mismatch", i+1)
		}
		expected, err := entryHash(entry.Sequence, entry.BundleRef, entry.Receipt, entry.PrevHash)
		if err != nil {
			return err
		}
		if entry.ContentHash != expected {
			return fmt.Errorf("receipt log: entry %d content hash mismatch", i+1)
		}
		prev = entry.ContentHash
	}

	if prev != l.headHash {
		return fmt.Errorf("receipt log: head hash mismatch")
	}
	return nil
}

func entryHash(seq uint64, bundleRef string, r Receipt, prevHash string) (string, error) {
	return canonicalize.CanonicalHash(struct {
		Seq       uint64  `json:"seq"`
		BundleRef string  `json:"bundle_ref"`
		Receipt   Receipt `json:"receipt"`
		PrevHash  string  `json:"prev"`
	}{seq, bundleRef, r, prevHash})
}
