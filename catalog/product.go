// Package catalog implements the read side of the storefront: product
// snapshots from the upstream catalog, pure filtering and pagination over
// them, and a cached list service in front of the external fetch
// collaborator.
package catalog

// Variant is one purchasable form of a product (for example a 250 g bag).
// Price is in minor currency units.
type Variant struct {
	ID          string   `json:"id"`
	Price       int64    `json:"price"`
	Stock       int      `json:"stock"`
	WeightGrams int      `json:"weight_grams"`
	IsActive    bool     `json:"is_active"`
	Images      []string `json:"images,omitempty"`
}

// Product is a read-only snapshot owned by the upstream catalog. Category
// and roast associations are carried as id lists so filtering needs no
// further lookups.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description,omitempty"`
	Description      string    `json:"description,omitempty"`
	Currency         string    `json:"currency"`
	CategoryIDs      []string  `json:"category_ids,omitempty"`
	RoastIDs         []string  `json:"roast_ids,omitempty"`
	Variants         []Variant `json:"variants"`
}

// Variant returns the variant with the given id, if present.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
