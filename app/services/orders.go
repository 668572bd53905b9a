package services

import (
	"sync"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/collection"
	"github.com/looklush/storefront/pkg/kvstore"
)

const ordersKey = "orders"

// Orders is the append-only order ledger. Orders are never updated or
// deleted; the status field exists on the model but nothing here advances it.
type Orders struct {
	mu     sync.Mutex
	store  kvstore.Store
	orders []models.Order
}

// NewOrders restores the ledger from the store.
func NewOrders(store kvstore.Store) *Orders {
	o := &Orders{store: store}
	store.Get(ordersKey, &o.orders)
	return o
}

// Add assigns a time-derived identifier, appends the order and persists.
func (o *Orders) Add(order models.Order) models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	order.ID = timeID()
	o.orders = append(o.orders, order)
	_ = o.store.Put(ordersKey, o.orders)
	return order
}

// All returns a copy of every order.
func (o *Orders) All() []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.Order, len(o.orders))
	copy(out, o.orders)
	return out
}

// GetByID is a linear lookup.
func (o *Orders) GetByID(id string) (models.Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return collection.First(o.orders, func(ord models.Order) bool {
		return ord.ID == id
	})
}

// ListByEmail returns the order history for a shipping email.
func (o *Orders) ListByEmail(email string) []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	return collection.Filter(o.orders, func(ord models.Order) bool {
		return ord.ShippingAddress.Email == email
	})
}
