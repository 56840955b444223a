package anchor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exaelux/mvp-notia-engine/pkg/anchor"
)

func TestNewNotarizationAdapter_Validation(t *testing.T) {
	_, err := anchor.NewNotarizationAdapter(anchor.NotarizationConfig{PackageID: "0xpkg"})
	assert.ErrorIs(t, err, anchor.ErrMissingPrivateKey)

	_, err = anchor.NewNotarizationAdapter(anchor.NotarizationConfig{PrivateKey: "key"})
	assert.ErrorIs(t, err, anchor.ErrMissingPackageID)
}

func TestNotarizationAdapter_Anchor(t *testing.T) {
	var gotMethod string
	var gotParams map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string        `json:"method"`
			Params []interface{} `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotMethod = req.Method
		require.Len(t, req.Params, 1)
		gotParams, _ = req.Params[0].(map[string]interface{})

		rpcOK(t, w, map[string]string{"digest": "0xabc123", "status": "success"})
	}))
	defer srv.Close()

	adapter, err := anchor.NewNotarizationAdapter(anchor.NotarizationConfig{
		RPCURL:     srv.URL,
		PrivateKey: "key",
		PackageID:  "0xpkg",
	})
	require.NoError(t, err)
	adapter = adapter.WithClock(func() time.Time {
		return time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	})

	receipt, err := adapter.Anchor(context.Background(), sampleBundle(t))
	require.NoError(t, err)

	assert.Equal(t, "notarization_createLocked", gotMethod)
	require.NotNil(t, gotParams)
	assert.Equal(t, "0xpkg", gotParams["package_id"])
	assert.Regexp(t, `^[a-f0-9]{64}$`, gotParams["state"], "only a content hash leaves the process")

	assert.Equal(t, anchor.NetworkTestnet, receipt.Network)
	assert.Equal(t, "0xabc123", receipt.TransactionID)
	assert.Equal(t, "2026-02-16T00:00:00Z", receipt.AnchoredAt)
	assert.Equal(t, anchor.StatusConfirmed, receipt.Status)
}

func TestNotarizationAdapter_SubmitHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rpcOK(t, w, map[string]string{"digest": "0xroot", "status": "pending"})
	}))
	defer srv.Close()

	adapter, err := anchor.NewNotarizationAdapter(anchor.NotarizationConfig{
		RPCURL:     srv.URL,
		PrivateKey: "key",
		PackageID:  "0xpkg",
	})
	require.NoError(t, err)

	receipt, err := adapter.SubmitHash(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, anchor.StatusPending, receipt.Status)
	assert.Equal(t, "0xroot", receipt.TransactionID)
}

func TestNotarizationAdapter_NodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]interface{}{"code": -32000, "message": "object locked"},
		})
		require.NoError(t, err)
	}))
	defer srv.Close()

	adapter, err := anchor.NewNotarizationAdapter(anchor.NotarizationConfig{
		RPCURL:     srv.URL,
		PrivateKey: "key",
		PackageID:  "0xpkg",
	})
	require.NoError(t, err)

	_, err = adapter.Anchor(context.Background(), sampleBundle(t))
	assert.Error(t, err)
}
