package services

import (
	"context"
	"fmt"
	"time"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/event"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/metrics"
)

// taxRate is the fixed checkout tax multiplier (8%).
const taxRate = 1.08

// buyNowTTL bounds how long a buy-now selection survives between the
// product page and checkout.
const buyNowTTL = 15 * time.Minute

// ClearMode controls what a cart-mode checkout removes from the cart.
type ClearMode string

const (
	// ClearSelected surgically removes only the checked-out lines.
	ClearSelected ClearMode = "selected"
	// ClearAll clears the whole cart, matching the storefront's historical
	// behaviour. Kept selectable so the old semantics stay reachable.
	ClearAll ClearMode = "all"
)

// PaymentGateway charges the order total. The storefront ships with a
// simulated gateway; a real processor implements the same port.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64) error
}

// SimulatedGateway approves every charge after a fixed processing delay.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Charge(ctx context.Context, _ float64) error {
	delay := g.Delay
	if delay == 0 {
		delay = 2 * time.Second
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Checkout turns cart lines (or a buy-now slot) into orders.
type Checkout struct {
	catalog   *Catalog
	carts     *Carts
	orders    *Orders
	slots     kvstore.Ephemeral
	gateway   PaymentGateway
	clearMode ClearMode
}

// NewCheckout wires the checkout flow. mode selects the post-checkout cart
// behaviour; anything other than ClearAll means surgical removal.
func NewCheckout(catalog *Catalog, carts *Carts, orders *Orders, slots kvstore.Ephemeral, gateway PaymentGateway, mode ClearMode) *Checkout {
	if mode != ClearAll {
		mode = ClearSelected
	}
	return &Checkout{
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		slots:     slots,
		gateway:   gateway,
		clearMode: mode,
	}
}

func buyNowKey(sessionID string) string { return "buynow:" + sessionID }

// BuyNow stores a single line in the one-shot transfer slot for the next
// checkout, bypassing the cart. Out-of-stock products are rejected here,
// before checkout is ever reached.
func (s *Checkout) BuyNow(sessionID, productID, color, size string, quantity int) error {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("buy now: %w", ErrNotFound)
	}
	if product.StockQuantity == 0 || quantity > product.StockQuantity {
		return fmt.Errorf("buy now: %w", ErrInsufficientStock)
	}
	if quantity < 1 {
		quantity = 1
	}

	item := models.CartItem{
		Product:       product,
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
		Selected:      true,
	}
	return s.slots.PutTTL(buyNowKey(sessionID), item, buyNowTTL)
}

// Submit runs the checkout: it settles the mode (a pending buy-now slot
// wins, and is consumed by the read), charges the simulated gateway,
// snapshots the lines into an order, decrements stock, and prunes the cart
// according to the configured clear mode.
func (s *Checkout) Submit(ctx context.Context, sessionID string, addr models.ShippingAddress) (models.Order, error) {
	var items []models.CartItem
	cartMode := true

	var slotItem models.CartItem
	if s.slots.Take(buyNowKey(sessionID), &slotItem) {
		items = []models.CartItem{slotItem}
		cartMode = false
	} else {
		items = s.carts.SelectedItems(sessionID)
	}

	if len(items) == 0 {
		return models.Order{}, fmt.Errorf("checkout: %w", ErrEmptyCheckout)
	}

	// Re-verify stock against the live catalogue before charging.
	for _, item := range items {
		product, ok := s.catalog.Get(item.Product.ID)
		if ok && item.Quantity > product.StockQuantity {
			return models.Order{}, fmt.Errorf("checkout %q: %w", item.Product.Name, ErrInsufficientStock)
		}
	}

	subtotal := sumPrice(items)
	total := subtotal * taxRate

	if err := s.gateway.Charge(ctx, total); err != nil {
		return models.Order{}, fmt.Errorf("checkout: payment: %w", err)
	}

	order := s.orders.Add(models.Order{
		Items:           items,
		Total:           total,
		Status:          models.OrderStatusPending,
		OrderDate:       time.Now(),
		ShippingAddress: addr,
	})

	for _, item := range items {
		_, _ = s.catalog.DecrementStock(item.Product.ID, item.Quantity)
	}

	if cartMode {
		if s.clearMode == ClearAll {
			_ = s.carts.Clear(sessionID)
		} else {
			_ = s.carts.RemoveLines(sessionID, items)
		}
	}

	mode := "cart"
	if !cartMode {
		mode = "buynow"
	}
	metrics.OrdersPlaced.WithLabelValues(mode).Inc()
	metrics.OrderValue.Observe(total)

	event.Fire("order.placed", order)
	return order, nil
}
