package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RateSource resolves a conversion rate between two currency codes
type RateSource interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// APIClient fetches rates from an exchangerate-api compatible endpoint
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a rate client for the given API base URL
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate fetches the latest rate from one currency to another
func (c *APIClient) Rate(ctx context.Context, from, to string) (float64, error) {
	url := fmt.Sprintf("%s/v4/latest/%s", c.baseURL, from)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate lookup failed: status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := body.Rates[to]
	if !ok {
		return 0, fmt.Errorf("no rate from %s to %s", from, to)
	}
	return rate, nil
}
