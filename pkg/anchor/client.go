package anchor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is a JSON-RPC 2.0 client for an IOTA node. Submissions are rate
// limited because public nodes throttle aggressive anchors. A failed call is
// returned to the caller as-is; retrying is the caller's decision.
type Client struct {
	httpClient *http.Client
	url        string
	limiter    *rate.Limiter
}

// NewClient creates a node client for the given RPC endpoint.
func NewClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Call performs one JSON-RPC call and decodes the result into out.
func (c *Client) Call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("anchor: rate limit wait: %w", err)
	}

	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("anchor: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("anchor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("anchor: %s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("anchor: %s: node returned %d", method, resp.StatusCode)
	}

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("anchor: decode response: %w", err)
	}
	if decoded.Error != nil {
		return fmt.Errorf("anchor: %s: node error %d: %s", method, decoded.Error.Code, decoded.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, out); err != nil {
		return fmt.Errorf("anchor: decode result: %w", err)
	}
	return nil
}
