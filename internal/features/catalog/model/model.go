package model

import (
	"storefront/internal/core/eventbus"
	"storefront/internal/features/catalog/domain"
)

// Change events published by the catalog model. Payloads carry the
// affected snapshot; subscribers re-read the model for anything else.
const (
	// TopicCatalogChanged fires after the catalog is replaced wholesale.
	TopicCatalogChanged = "catalog:changed"
	// TopicSelectionChanged fires after a product is selected for preview.
	TopicSelectionChanged = "selection:changed"
	// TopicCartChanged fires after any cart mutation (add/remove/clear).
	TopicCartChanged = "cart:changed"
)

// Model owns the purchasable product list, the cart and the current
// preview selection for one shopping session. All mutation happens from
// the session actor, so the model itself carries no lock.
type Model struct {
	bus        *eventbus.Bus
	list       domain.ProductList
	cart       domain.ProductList
	cartAmount int
	selected   *domain.Product
}

// New creates an empty catalog model publishing change events on bus.
func New(bus *eventbus.Bus) *Model {
	return &Model{
		bus:  bus,
		list: domain.NewProductList(nil),
		cart: domain.NewProductList(nil),
	}
}

// SetCatalog replaces the catalog wholesale and emits TopicCatalogChanged.
// Total is rederived from the item count regardless of what the source
// reported.
func (m *Model) SetCatalog(list domain.ProductList) {
	m.list = domain.NewProductList(list.Items)
	m.bus.Emit(TopicCatalogChanged, m.list)
}

// Catalog returns the current product list.
func (m *Model) Catalog() domain.ProductList {
	return m.list
}

// FindByID scans the catalog for the first product with the given id.
func (m *Model) FindByID(id string) (domain.Product, error) {
	for _, item := range m.list.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// SelectItem sets the preview selection and emits TopicSelectionChanged.
// The previous selection is dropped implicitly.
func (m *Model) SelectItem(p domain.Product) {
	m.selected = &p
	m.bus.Emit(TopicSelectionChanged, p)
}

// SelectedItem returns the current preview selection, if any.
func (m *Model) SelectedItem() (domain.Product, bool) {
	if m.selected == nil {
		return domain.Product{}, false
	}
	return *m.selected, true
}

// ClearSelection drops the preview selection without emitting.
func (m *Model) ClearSelection() {
	m.selected = nil
}

// AddSelectedToCart appends the selected product to the cart. Without a
// selection it returns ErrNoSelection; for a priceless product it returns
// ErrPriceless and leaves the cart untouched. Duplicates are allowed; each
// unit is its own cart entry.
func (m *Model) AddSelectedToCart() error {
	if m.selected == nil {
		return domain.ErrNoSelection
	}
	if !m.selected.Purchasable() {
		return domain.ErrPriceless
	}

	m.cart.Items = append(m.cart.Items, *m.selected)
	m.recomputeCart()
	m.bus.Emit(TopicCartChanged, m.cart)
	return nil
}

// RemoveFromCart removes the first cart entry with the given id and emits
// TopicCartChanged. An absent id is reported via ErrProductNotFound with
// no state change.
func (m *Model) RemoveFromCart(id string) error {
	for i, item := range m.cart.Items {
		if item.ID == id {
			m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			m.recomputeCart()
			m.bus.Emit(TopicCartChanged, m.cart)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

// ClearCart empties the cart, resets the amount to zero and emits
// TopicCartChanged.
func (m *Model) ClearCart() {
	m.cart = domain.NewProductList(nil)
	m.cartAmount = 0
	m.bus.Emit(TopicCartChanged, m.cart)
}

// IsInCart reports whether any cart entry shares the product's id.
func (m *Model) IsInCart(p domain.Product) bool {
	for _, item := range m.cart.Items {
		if item.ID == p.ID {
			return true
		}
	}
	return false
}

// Cart returns the current cart contents.
func (m *Model) Cart() domain.ProductList {
	return m.cart
}

// CartAmount returns the sum of prices over all cart entries.
func (m *Model) CartAmount() int {
	return m.cartAmount
}

// CartItemIDs returns the ids of all cart entries in order.
func (m *Model) CartItemIDs() []string {
	ids := make([]string, 0, len(m.cart.Items))
	for _, item := range m.cart.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// recomputeCart rederives the cart total and amount from current contents.
// The amount is never carried incrementally between mutations.
func (m *Model) recomputeCart() {
	m.cart.Total = len(m.cart.Items)
	amount := 0
	for _, item := range m.cart.Items {
		if item.Price != nil {
			amount += *item.Price
		}
	}
	m.cartAmount = amount
}
