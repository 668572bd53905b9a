package services

import (
	"fmt"
	"sync"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/collection"
	"github.com/looklush/storefront/pkg/kvstore"
)

// Carts manages per-session shopping carts. Each cart is persisted as a
// full snapshot under "cart:<sessionID>" after every mutation.
type Carts struct {
	mu    sync.Mutex
	store kvstore.Store
}

// NewCarts returns a cart service over the given store.
func NewCarts(store kvstore.Store) *Carts {
	return &Carts{store: store}
}

func cartKey(sessionID string) string { return "cart:" + sessionID }

// Items returns the cart lines for a session.
func (c *Carts) Items(sessionID string) []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(sessionID)
}

// Add merges the product into an existing line with the same
// (product, color, size) key, or appends a new selected line. Adding more
// than the available stock is rejected.
func (c *Carts) Add(sessionID string, product models.Product, color, size string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if quantity > product.StockQuantity {
		return fmt.Errorf("add to cart: %w", ErrInsufficientStock)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load(sessionID)
	for i, item := range items {
		if item.Matches(product.ID, color, size) {
			items[i].Quantity += quantity
			return c.save(sessionID, items)
		}
	}

	items = append(items, models.CartItem{
		Product:       product,
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
		Selected:      true,
	})
	return c.save(sessionID, items)
}

// Remove deletes the line with the given composite key.
func (c *Carts) Remove(sessionID, productID, color, size string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := collection.Reject(c.load(sessionID), func(i models.CartItem) bool {
		return i.Matches(productID, color, size)
	})
	return c.save(sessionID, items)
}

// UpdateQuantity sets the line quantity. A quantity of zero or less removes
// the line entirely.
func (c *Carts) UpdateQuantity(sessionID, productID, color, size string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(sessionID, productID, color, size)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load(sessionID)
	for i, item := range items {
		if item.Matches(productID, color, size) {
			items[i].Quantity = quantity
		}
	}
	return c.save(sessionID, items)
}

// ToggleSelection flips the per-line selection flag used by cart-mode
// checkout.
func (c *Carts) ToggleSelection(sessionID, productID, color, size string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load(sessionID)
	for i, item := range items {
		if item.Matches(productID, color, size) {
			items[i].Selected = !items[i].Selected
		}
	}
	return c.save(sessionID, items)
}

// SelectAll sets every line's selection flag.
func (c *Carts) SelectAll(sessionID string, selected bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load(sessionID)
	for i := range items {
		items[i].Selected = selected
	}
	return c.save(sessionID, items)
}

// Clear empties the cart.
func (c *Carts) Clear(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(sessionID, nil)
}

// RemoveLines deletes exactly the given lines. Checkout uses this to prune
// only the items that were part of the order.
func (c *Carts) RemoveLines(sessionID string, lines []models.CartItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := collection.Reject(c.load(sessionID), func(i models.CartItem) bool {
		for _, line := range lines {
			if i.Matches(line.Product.ID, line.SelectedColor, line.SelectedSize) {
				return true
			}
		}
		return false
	})
	return c.save(sessionID, items)
}

// SelectedItems returns only the lines flagged for checkout.
func (c *Carts) SelectedItems(sessionID string) []models.CartItem {
	return collection.Filter(c.Items(sessionID), func(i models.CartItem) bool {
		return i.Selected
	})
}

// TotalPrice sums price×quantity over all lines.
func (c *Carts) TotalPrice(sessionID string) float64 {
	return sumPrice(c.Items(sessionID))
}

// TotalItems sums quantities over all lines.
func (c *Carts) TotalItems(sessionID string) int {
	return sumQuantity(c.Items(sessionID))
}

// SelectedTotalPrice sums price×quantity over the selected lines.
func (c *Carts) SelectedTotalPrice(sessionID string) float64 {
	return sumPrice(c.SelectedItems(sessionID))
}

// SelectedTotalItems sums quantities over the selected lines.
func (c *Carts) SelectedTotalItems(sessionID string) int {
	return sumQuantity(c.SelectedItems(sessionID))
}

func sumPrice(items []models.CartItem) float64 {
	return collection.Reduce(items, 0.0, func(total float64, i models.CartItem) float64 {
		return total + i.LineTotal()
	})
}

func sumQuantity(items []models.CartItem) int {
	return collection.Reduce(items, 0, func(total int, i models.CartItem) int {
		return total + i.Quantity
	})
}

// load and save expect c.mu to be held.

func (c *Carts) load(sessionID string) []models.CartItem {
	var items []models.CartItem
	c.store.Get(cartKey(sessionID), &items)
	return items
}

func (c *Carts) save(sessionID string, items []models.CartItem) error {
	if len(items) == 0 {
		return c.store.Delete(cartKey(sessionID))
	}
	return c.store.Put(cartKey(sessionID), items)
}
