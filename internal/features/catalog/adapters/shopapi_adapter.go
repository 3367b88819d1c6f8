package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/core/config"
	"storefront/internal/core/httpclient"
	"storefront/internal/features/catalog/domain"
)

// ShopAPIAdapter implements the CatalogProvider interface using the remote
// shop REST API. Every image path returned by the API is prefixed with the
// configured CDN origin before the product leaves the adapter.
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

// Products fetches the full product list from the shop API.
func (a *ShopAPIAdapter) Products(ctx context.Context) (domain.ProductList, error) {
	url := fmt.Sprintf("%s/product", a.config.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProductList{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.ProductList{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ProductList{}, fmt.Errorf("shop API returned status: %d", resp.StatusCode)
	}

	var list domain.ProductList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return domain.ProductList{}, fmt.Errorf("failed to decode response: %w", err)
	}

	for i := range list.Items {
		list.Items[i].Image = a.config.CDNURL + list.Items[i].Image
	}

	// The API reports its own total; the list invariant is len(items).
	return domain.NewProductList(list.Items), nil
}

// ProductByID fetches a single product from the shop API.
func (a *ShopAPIAdapter) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	url := fmt.Sprintf("%s/product/%s", a.config.BaseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Product{}, fmt.Errorf("shop API returned status: %d", resp.StatusCode)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return domain.Product{}, fmt.Errorf("failed to decode response: %w", err)
	}

	product.Image = a.config.CDNURL + product.Image
	return product, nil
}
