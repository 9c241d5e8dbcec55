// Package pipeline is the client side of the price oracle endpoints: it
// pushes quotes to a running API.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"jainvest/internal/market"
)

// PriceEntry is one quote in the push payload.
type PriceEntry struct {
	Symbol     string `json:"symbol"`
	Price      string `json:"price"`
	RecordedAt string `json:"recorded_at"` // RFC3339
}

// Client pushes prices to the pipeline API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a pipeline client. A nil httpClient gets a traced client with
// a 30s timeout.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// PushPrices submits quotes and returns how many the API applied.
func (c *Client) PushPrices(ctx context.Context, prices []market.PriceResult) (int, error) {
	entries := make([]PriceEntry, len(prices))
	for i, p := range prices {
		entries[i] = PriceEntry{
			Symbol:     p.Symbol,
			Price:      p.Price.String(),
			RecordedAt: p.RecordedAt.UTC().Format(time.RFC3339),
		}
	}

	body, err := json.Marshal(struct {
		Prices []PriceEntry `json:"prices"`
	}{Prices: entries})
	if err != nil {
		return 0, fmt.Errorf("marshaling prices: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/pipeline/prices", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pushing prices: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("pushing prices: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Applied int `json:"applied"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decoding prices response: %w", err)
	}
	return result.Applied, nil
}
