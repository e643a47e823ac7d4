// Package rpc is the JSON-RPC 2.0 gateway to the ledger node. It exposes the
// fixed set of methods the pipeline consumes and distinguishes transport
// failures from ledger-level rejections. No retries happen at this layer;
// retry policy belongs to the caller.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Methods the gateway is allowed to issue. Anything else is a programming
// error and is rejected before touching the network.
const (
	MethodGetMinimumBalanceForRentExemption = "getMinimumBalanceForRentExemption"
	MethodGetLatestBlockhash                = "getLatestBlockhash"
	MethodGetBalance                        = "getBalance"
	MethodGetTokenAccountsByOwner           = "getTokenAccountsByOwner"
	MethodSendTransaction                   = "sendTransaction"
	MethodGetSignatureStatuses              = "getSignatureStatuses"
)

var allowedMethods = map[string]bool{
	MethodGetMinimumBalanceForRentExemption: true,
	MethodGetLatestBlockhash:                true,
	MethodGetBalance:                        true,
	MethodGetTokenAccountsByOwner:           true,
	MethodSendTransaction:                   true,
	MethodGetSignatureStatuses:              true,
}

// ErrMethodNotAllowed indicates a method outside the gateway's allow-list.
var ErrMethodNotAllowed = errors.New("rpc: method not allowed")

// Error is a ledger-level rejection: the node answered with a well-formed
// JSON-RPC error object. The raw payload is preserved verbatim.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("ledger error %d: %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("ledger error %d: %s", e.Code, e.Message)
}

// Client issues JSON-RPC calls to a single configured endpoint.
type Client struct {
	http       *http.Client
	endpoint   string
	commitment string
}

// Option configures a Client.
type Option func(*Client) error

// NewClient creates a gateway for the given endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("rpc: endpoint required")
	}

	c := &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		commitment: "finalized",
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return errors.New("rpc: nil http client")
		}
		c.http = httpClient
		return nil
	}
}

// WithTimeout bounds each individual request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.http.Timeout = d
		return nil
	}
}

// WithCommitment sets the finality level attached to queries and preflight.
func WithCommitment(commitment string) Option {
	return func(c *Client) error {
		if commitment == "" {
			return errors.New("rpc: empty commitment")
		}
		c.commitment = commitment
		return nil
	}
}

// Commitment returns the configured finality level.
func (c *Client) Commitment() string { return c.commitment }

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Error   *Error          `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// Call issues a single JSON-RPC request and returns the raw result. A
// transport failure (dial, timeout, non-2xx, malformed body) comes back
// wrapped; a ledger rejection comes back as *Error.
func (c *Client) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if !allowedMethods[method] {
		return nil, fmt.Errorf("%w: %q", ErrMethodNotAllowed, method)
	}

	body, err := json.Marshal(request{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("rpc: marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rpc: build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", method, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("rpc: %s: unexpected status %d", method, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: read response: %w", method, err)
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("rpc: %s: decode response: %w", method, err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Result, nil
}
