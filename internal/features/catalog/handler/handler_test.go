package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/features/catalog/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogProvider is a mock implementation of ports.CatalogProvider
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Products(ctx context.Context) (domain.ProductList, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ProductList), args.Error(1)
}

func (m *MockCatalogProvider) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func setupApp(provider *MockCatalogProvider) *fiber.App {
	app := fiber.New()
	h := NewCatalogHandler(provider)
	app.Get("/products", h.ListProducts)
	app.Get("/products/:id", h.GetProduct)
	return app
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		app := setupApp(provider)

		price := 100
		list := domain.NewProductList([]domain.Product{{ID: "p1", Title: "One", Price: &price}})
		provider.On("Products", mock.Anything).Return(list, nil).Once()

		req := httptest.NewRequest("GET", "/products", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.ProductList
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 1, got.Total)
		provider.AssertExpectations(t)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		app := setupApp(provider)

		provider.On("Products", mock.Anything).Return(domain.ProductList{}, errors.New("connection refused")).Once()

		req := httptest.NewRequest("GET", "/products", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		provider.AssertExpectations(t)
	})
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		app := setupApp(provider)

		provider.On("ProductByID", mock.Anything, "p1").Return(domain.Product{ID: "p1", Title: "One"}, nil).Once()

		req := httptest.NewRequest("GET", "/products/p1", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		provider.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		app := setupApp(provider)

		provider.On("ProductByID", mock.Anything, "missing").Return(domain.Product{}, domain.ErrProductNotFound).Once()

		req := httptest.NewRequest("GET", "/products/missing", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		provider.AssertExpectations(t)
	})
}
