package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ErrEmptyCart is returned by Checkout when there is nothing to submit.
var ErrEmptyCart = errors.New("cart: empty")

// Address is a shipping or billing descriptor passed through to the order
// collaborator.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order is the cart snapshot submitted at checkout. Reference is a unique
// id generated per submission so the upstream can deduplicate retries.
type Order struct {
	Reference  string  `json:"reference"`
	Items      []Item  `json:"items"`
	TotalItems int     `json:"total_items"`
	TotalPrice int64   `json:"total_price"`
	Shipping   Address `json:"shipping"`
	Billing    Address `json:"billing"`
}

// Submitter is the external checkout collaborator. The returned payload is
// passed back to the caller uninterpreted.
type Submitter interface {
	SubmitOrder(ctx context.Context, order Order) (json.RawMessage, error)
}

// SubmitterFunc adapts a plain function to the [Submitter] interface.
type SubmitterFunc func(ctx context.Context, order Order) (json.RawMessage, error)

// SubmitOrder calls f.
func (f SubmitterFunc) SubmitOrder(ctx context.Context, order Order) (json.RawMessage, error) {
	return f(ctx, order)
}

// Receipt pairs the submission reference with whatever the collaborator
// returned.
type Receipt struct {
	Reference string          `json:"reference"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Checkout snapshots the cart and hands it to the submitter. The cart is
// left untouched either way; clearing after a confirmed order is the
// caller's decision. The collaborator's response is not interpreted here.
func (s *Store) Checkout(ctx context.Context, submitter Submitter, shipping, billing Address) (*Receipt, error) {
	s.mu.Lock()
	order := Order{
		Reference: uuid.NewString(),
		Items:     s.itemsLocked(),
		Shipping:  shipping,
		Billing:   billing,
	}
	for _, it := range order.Items {
		order.TotalItems += it.Quantity
		order.TotalPrice += it.Subtotal()
	}
	s.mu.Unlock()

	if len(order.Items) == 0 {
		return nil, ErrEmptyCart
	}

	data, err := submitter.SubmitOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	return &Receipt{Reference: order.Reference, Data: data}, nil
}
