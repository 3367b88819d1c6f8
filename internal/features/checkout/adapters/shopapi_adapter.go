package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/core/config"
	"storefront/internal/core/httpclient"
	"storefront/internal/features/checkout/domain"
)

// ShopAPIAdapter implements the OrderSubmitter interface using the remote
// shop REST API.
type ShopAPIAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the shop API connection details.
	config config.ShopAPIConfig
}

// NewShopAPIAdapter creates a new instance of ShopAPIAdapter.
func NewShopAPIAdapter(cfg config.ShopAPIConfig) *ShopAPIAdapter {
	return &ShopAPIAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// Submit posts the finalized order and decodes the confirmation.
func (a *ShopAPIAdapter) Submit(ctx context.Context, order domain.Order) (domain.OrderResult, error) {
	url := fmt.Sprintf("%s/order", a.config.BaseURL)

	body, err := json.Marshal(order)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.OrderResult{}, fmt.Errorf("shop API returned status: %d", resp.StatusCode)
	}

	var result domain.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return result, nil
}
