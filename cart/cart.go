// Package cart implements the persisted shopping cart: item identity by
// product/variant composite key, quantity transitions, derived totals, and
// checkout snapshots for the order collaborator.
package cart

import (
	"github.com/roastworks/storefront/catalog"
	"github.com/roastworks/storefront/price"
)

// ProductRef is the product snapshot captured when an item enters the cart.
type ProductRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// VariantRef is the variant snapshot captured when an item enters the cart.
type VariantRef struct {
	ID          string   `json:"id"`
	WeightGrams int      `json:"weight_grams,omitempty"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
}

// Item is one cart line. At most one Item exists per composite key at any
// time; adding the same product/variant again merges quantities instead.
// UnitPrice is the variant price captured at add time — it is not refreshed
// from the catalog afterwards — and persists under the "price" field.
type Item struct {
	ID        string     `json:"id"`
	Product   ProductRef `json:"product"`
	Variant   VariantRef `json:"variant"`
	Quantity  int        `json:"quantity"`
	UnitPrice int64      `json:"price"`
}

// Subtotal returns the line total in minor currency units.
func (i Item) Subtotal() int64 {
	return price.Line(i.Quantity, i.UnitPrice)
}

// Key returns the composite cart key for a product/variant pair.
func Key(productID, variantID string) string {
	return productID + "-" + variantID
}

// newItem builds a cart line from catalog snapshots.
func newItem(p catalog.Product, v catalog.Variant, quantity int) Item {
	return Item{
		ID: Key(p.ID, v.ID),
		Product: ProductRef{
			ID:       p.ID,
			Name:     p.Name,
			Currency: p.Currency,
		},
		Variant: VariantRef{
			ID:          v.ID,
			WeightGrams: v.WeightGrams,
			Stock:       v.Stock,
			Images:      v.Images,
		},
		Quantity:  quantity,
		UnitPrice: v.Price,
	}
}
