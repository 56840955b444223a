package anchor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exaelux/mvp-notia-engine/pkg/anchor"
)

func testReceipt(tx string) anchor.Receipt {
	return anchor.Receipt{
		Network:       anchor.NetworkMock,
		TransactionID: tx,
		AnchoredAt:    "2026-02-16T00:00:00Z",
		Status:        anchor.StatusConfirmed,
	}
}

func TestReceiptLog_AppendAndVerify(t *testing.T) {
	log := anchor.NewReceiptLog().WithClock(func() time.Time {
		return time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	})

	seq1, err := log.Append("ref-1", testReceipt("iota:tx:aa"))
	require.NoError(t, err)
	seq2, err := log.Append("ref-2", testReceipt("iota:tx:bb"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), seq1)
	assert.Equal(t, uint64(2), seq2)
	assert.NoError(t, log.Verify())

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "genesis", entries[0].PrevHash)
	assert.Equal(t, entries[0].ContentHash, entries[1].PrevHash)
	assert.Equal(t, entries[1].ContentHash, log.Head())
}

func TestReceiptLog_EntriesAreCopies(t *testing.T) {
	log := anchor.NewReceiptLog()
	_, err := log.Append("ref-1", testReceipt("iota:tx:aa"))
	require.NoError(t, err)

	entries := log.Entries()
	entries[0].BundleRef = "tampered"

	assert.Equal(t, "ref-1", log.Entries()[0].BundleRef)
	assert.NoError(t, log.Verify())
}

func TestReceiptLog_EmptyVerifies(t *testing.T) {
	assert.NoError(t, anchor.NewReceiptLog().Verify())
}
