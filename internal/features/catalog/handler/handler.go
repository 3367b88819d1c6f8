package handler

import (
	"errors"
	"net/http"

	"storefront/internal/core/logger"
	"storefront/internal/features/catalog/domain"
	"storefront/internal/features/catalog/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	provider ports.CatalogProvider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(provider ports.CatalogProvider) *CatalogHandler {
	return &CatalogHandler{
		provider: provider,
	}
}

// ListProducts handles GET /products.
// @Summary List catalog products
// @Description Returns the full product list from the shop API, images CDN-prefixed.
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.ProductList
// @Failure 502 {object} map[string]string
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	list, err := h.provider.Products(c.Context())
	if err != nil {
		logger.Get().Error("Failed to fetch catalog", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Catalog is temporarily unavailable",
		})
	}

	return c.Status(http.StatusOK).JSON(list)
}

// GetProduct handles GET /products/:id.
// @Summary Get a single product
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.provider.ProductByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to fetch product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Catalog is temporarily unavailable",
		})
	}

	return c.Status(http.StatusOK).JSON(product)
}
