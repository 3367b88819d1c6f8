package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id is absent from the current list.
	ErrProductNotFound = errors.New("product not found")
	// ErrPriceless is returned when a non-purchasable product is added to the cart.
	ErrPriceless = errors.New("product has no price")
	// ErrNoSelection is returned when a cart operation needs a selected product and there is none.
	ErrNoSelection = errors.New("no product selected")
)

// Product represents a catalog item. A nil Price marks a priceless item
// that cannot be purchased. Products are immutable once loaded for a
// session; identity is by ID.
type Product struct {
	// ID is the unique product identifier assigned by the shop API.
	ID string `json:"id"`
	// Title is the display name of the product.
	Title string `json:"title"`
	// Description is the long-form product description.
	Description string `json:"description"`
	// Image is the product image URL, CDN prefix already applied.
	Image string `json:"image"`
	// Category is the product category label.
	Category string `json:"category"`
	// Price is the unit price. Nil means the item is not purchasable.
	Price *int `json:"price"`
}

// Purchasable reports whether the product can be added to a cart.
func (p Product) Purchasable() bool {
	return p.Price != nil
}

// ProductList is an ordered sequence of products. Total always equals
// len(Items); it is recomputed on every mutation, never set independently.
type ProductList struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

// NewProductList builds a ProductList with a consistent Total.
func NewProductList(items []Product) ProductList {
	if items == nil {
		items = []Product{}
	}
	return ProductList{Items: items, Total: len(items)}
}
