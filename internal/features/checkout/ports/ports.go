package ports

import (
	"context"

	"storefront/internal/features/checkout/domain"
)

// OrderSubmitter defines the interface for posting a finalized order to
// the remote shop API. This is a Secondary Port (Driven Port).
type OrderSubmitter interface {
	// Submit posts the order and returns the server-assigned confirmation.
	Submit(ctx context.Context, order domain.Order) (domain.OrderResult, error)
}
