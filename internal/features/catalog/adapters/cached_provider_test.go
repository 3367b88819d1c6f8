package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/core/cache"
	"storefront/internal/features/catalog/domain"

	"github.com/alicebob/miniredis/v2"
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

func newCachedProvider(t *testing.T, next *MockCatalogProvider, ttl time.Duration) (*CachedProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewCachedProvider(next, adapter, ttl), mr
}

func TestCachedProvider_Products_MissThenHit(t *testing.T) {
	price := 100
	list := domain.NewProductList([]domain.Product{{ID: "p1", Title: "One", Price: &price}})

	next := new(MockCatalogProvider)
	next.On("Products", mock.Anything).Return(list, nil).Once()

	provider, _ := newCachedProvider(t, next, time.Minute)
	ctx := context.Background()

	// First call goes upstream and fills the cache.
	got, err := provider.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	// Second call is served from the cache; the mock allows one call only.
	got, err = provider.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	next.AssertExpectations(t)
}

func TestCachedProvider_Products_Expiry(t *testing.T) {
	list := domain.NewProductList(nil)

	next := new(MockCatalogProvider)
	next.On("Products", mock.Anything).Return(list, nil).Twice()

	provider, mr := newCachedProvider(t, next, time.Second)
	ctx := context.Background()

	_, err := provider.Products(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = provider.Products(ctx)
	require.NoError(t, err)

	next.AssertExpectations(t)
}

func TestCachedProvider_Products_CorruptEntry(t *testing.T) {
	price := 100
	list := domain.NewProductList([]domain.Product{{ID: "p1", Title: "One", Price: &price}})

	next := new(MockCatalogProvider)
	next.On("Products", mock.Anything).Return(list, nil).Once()

	provider, mr := newCachedProvider(t, next, time.Minute)
	require.NoError(t, mr.Set(catalogCacheKey, "{not json"))

	// An unreadable entry is a miss; the fetch overwrites it.
	got, err := provider.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, list, got)
	next.AssertExpectations(t)
}

func TestCachedProvider_Products_UpstreamError(t *testing.T) {
	next := new(MockCatalogProvider)
	next.On("Products", mock.Anything).Return(domain.ProductList{}, errors.New("boom")).Once()

	provider, _ := newCachedProvider(t, next, time.Minute)

	_, err := provider.Products(context.Background())
	assert.Error(t, err)
	next.AssertExpectations(t)
}

func TestCachedProvider_ProductByID_PassThrough(t *testing.T) {
	next := new(MockCatalogProvider)
	next.On("ProductByID", mock.Anything, "p1").Return(domain.Product{ID: "p1"}, nil).Twice()

	provider, _ := newCachedProvider(t, next, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p, err := provider.ProductByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
	}

	next.AssertExpectations(t)
}
