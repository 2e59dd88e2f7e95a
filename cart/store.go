package cart

import (
	"encoding/json"
	"sync"

	"github.com/roastworks/storefront/catalog"
	"github.com/roastworks/storefront/kv"
	"github.com/roastworks/storefront/logx"
	"github.com/roastworks/storefront/price"
)

// StorageKey is the fixed key the cart's line items persist under.
const StorageKey = "cart:items"

// persisted is the durable shape. Only the items survive a reload; the
// open/closed drawer state is deliberately excluded.
type persisted struct {
	Items []Item `json:"items"`
}

// Store is the cart state machine. Every mutation synchronously writes the
// new items back to the backing store, so a reload always observes the last
// completed operation. All methods are safe for concurrent use; the mutex
// makes each read-modify-write (such as a quantity merge) atomic.
type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	log   logx.Logger
	items []Item
	open  bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for persistence failures.
func WithLogger(l logx.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore creates a cart over the given backing store and loads any
// previously persisted items. Corrupt persisted state loads as an empty
// cart, never as an error.
func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, log: logx.Nop()}
	for _, o := range opts {
		o(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.log.Debugf("cart: read persisted items: %v", err)
		return
	}
	if !ok {
		return
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Debugf("cart: corrupt persisted items, starting empty: %v", err)
		return
	}
	s.items = p.Items
}

// persist writes the current items. Caller must hold s.mu. Failures are
// logged and swallowed; the in-memory state stays authoritative for the
// session.
func (s *Store) persist() {
	raw, err := json.Marshal(persisted{Items: s.itemsLocked()})
	if err != nil {
		s.log.Warnf("cart: encode items: %v", err)
		return
	}
	if err := s.kv.Set(StorageKey, raw); err != nil {
		s.log.Warnf("cart: persist items: %v", err)
	}
}

// AddItem puts quantity units of the given variant in the cart. If the
// product/variant pair is already present its quantity is incremented; no
// upper bound is applied here. The variant price is snapshotted on first
// add. Non-positive quantities are ignored.
func (s *Store) AddItem(p catalog.Product, v catalog.Variant, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := Key(p.ID, v.ID)
	if i := s.indexLocked(id); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, newItem(p, v, quantity))
	}
	s.persist()
}

// UpdateQuantity sets the item's quantity verbatim. A quantity of zero or
// less removes the item — the cart never stores a non-positive quantity.
// Clamping against variant stock is the caller's responsibility. Updating an
// absent id is a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = quantity
	}
	s.persist()
}

// RemoveItem drops the item with the given id. Removing an absent id is a
// no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalItems returns the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice returns the cart total in minor currency units.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]int64, len(s.items))
	for i, it := range s.items {
		lines[i] = it.Subtotal()
	}
	return price.Sum(lines...)
}

// Open marks the cart drawer open. The flag is session state only and is
// never persisted.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

// Close marks the cart drawer closed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Toggle flips the drawer state.
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// IsOpen reports the drawer state.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// indexLocked returns the position of id, or -1. Caller must hold s.mu.
func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// itemsLocked copies the items slice. Caller must hold s.mu.
func (s *Store) itemsLocked() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}
