// Package payments integrates with the external payment gateway. The engine
// never captures money itself: it only verifies that a reference the
// customer presents has settled, and for how much.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"forwarding/internal/core/ports"
)

// Client implements PaymentVerifier against the gateway's HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a gateway client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type verifyResp struct {
	Reference   string `json:"reference"`
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

// Verify fetches the state of a payment reference from the gateway.
func (c *Client) Verify(ctx context.Context, reference string) (ports.PaymentVerification, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ports.PaymentVerification{}, fmt.Errorf("parse base url: %w", err)
	}
	u.Path = "/v1/payments/" + url.PathEscape(reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return ports.PaymentVerification{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return ports.PaymentVerification{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return ports.PaymentVerification{}, fmt.Errorf("payment gateway http %d", resp.StatusCode)
	}

	var r verifyResp
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return ports.PaymentVerification{}, fmt.Errorf("decode: %w", err)
	}

	return ports.PaymentVerification{
		Reference:    r.Reference,
		Succeeded:    r.Status == "succeeded",
		AmountMinor:  r.AmountMinor,
		CurrencyCode: r.Currency,
	}, nil
}
