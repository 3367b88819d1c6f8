package ports

import (
	"context"

	"storefront/internal/features/catalog/domain"
)

// CatalogProvider defines the interface for retrieving the remote product
// catalog. This is a Secondary Port (Driven Port).
type CatalogProvider interface {
	// Products retrieves the full catalog.
	Products(ctx context.Context) (domain.ProductList, error)
	// ProductByID retrieves a single product by its identifier.
	ProductByID(ctx context.Context, id string) (domain.Product, error)
}
