package services

import (
	"context"
	"testing"
	"time"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture(t *testing.T, mode ClearMode, products ...models.Product) (*Checkout, *Catalog, *Carts, *Orders) {
	t.Helper()

	store := kvstore.NewMemory()
	require.NoError(t, store.Put("products", products))

	catalog := NewCatalog(store)
	carts := NewCarts(store)
	orders := NewOrders(store)
	gateway := SimulatedGateway{Delay: time.Millisecond}

	return NewCheckout(catalog, carts, orders, store, gateway, mode), catalog, carts, orders
}

func testAddr() models.ShippingAddress {
	return models.ShippingAddress{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Address: "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "12345",
	}
}

func TestSubmitComputesTaxedTotal(t *testing.T) {
	checkout, catalog, carts, _ := newCheckoutFixture(t, ClearSelected, testProduct("1", 100, 3))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 2))

	order, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)

	assert.InDelta(t, 216.00, order.Total, 0.001, "2 x 100 with 8% tax")
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "jane@example.com", order.ShippingAddress.Email)
}

func TestSubmitDecrementsStockAndPrunesCart(t *testing.T) {
	checkout, catalog, carts, orders := newCheckoutFixture(t, ClearSelected, testProduct("1", 100, 3))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 2))

	_, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)

	p := mustGet(t, catalog, "1")
	assert.Equal(t, 1, p.StockQuantity)
	assert.True(t, p.InStock)
	assert.Empty(t, carts.Items(sid), "the only line was checked out")
	assert.Len(t, orders.All(), 1)
}

func TestSubmitSelectedModeKeepsUnselectedLines(t *testing.T) {
	checkout, catalog, carts, _ := newCheckoutFixture(t, ClearSelected,
		testProduct("1", 100, 10), testProduct("2", 50, 10))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 1))
	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "2"), "gold", "One Size", 1))
	require.NoError(t, carts.ToggleSelection(sid, "2", "gold", "One Size"))

	order, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	// Only the checked-out line is removed; the deselected one survives.
	remaining := carts.Items(sid)
	require.Len(t, remaining, 1)
	assert.Equal(t, "2", remaining[0].Product.ID)
}

func TestSubmitClearAllWipesTheCart(t *testing.T) {
	checkout, catalog, carts, _ := newCheckoutFixture(t, ClearAll,
		testProduct("1", 100, 10), testProduct("2", 50, 10))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 1))
	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "2"), "gold", "One Size", 1))
	require.NoError(t, carts.ToggleSelection(sid, "2", "gold", "One Size"))

	_, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)

	assert.Empty(t, carts.Items(sid))
}

func TestSubmitEmptySelectionFails(t *testing.T) {
	checkout, catalog, carts, orders := newCheckoutFixture(t, ClearSelected, testProduct("1", 100, 3))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 1))
	require.NoError(t, carts.SelectAll(sid, false))

	_, err := checkout.Submit(context.Background(), sid, testAddr())
	assert.ErrorIs(t, err, ErrEmptyCheckout)
	assert.Empty(t, orders.All())
}

func TestBuyNowSlotWinsOverCart(t *testing.T) {
	checkout, catalog, carts, _ := newCheckoutFixture(t, ClearSelected,
		testProduct("1", 100, 10), testProduct("2", 50, 10))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 5))
	require.NoError(t, checkout.BuyNow(sid, "2", "gold", "One Size", 1))

	order, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "2", order.Items[0].Product.ID)
	assert.InDelta(t, 54.00, order.Total, 0.001)

	// Buy-now checkout never touches the cart.
	require.Len(t, carts.Items(sid), 1)
	assert.Equal(t, 5, carts.Items(sid)[0].Quantity)
}

func TestBuyNowSlotIsConsumedBySubmit(t *testing.T) {
	checkout, catalog, carts, _ := newCheckoutFixture(t, ClearSelected,
		testProduct("1", 100, 10), testProduct("2", 50, 10))

	require.NoError(t, checkout.BuyNow(sid, "2", "gold", "One Size", 1))
	_, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)

	// The slot is one-shot: the next submit falls back to the cart.
	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 1))
	order, err := checkout.Submit(context.Background(), sid, testAddr())
	require.NoError(t, err)
	assert.Equal(t, "1", order.Items[0].Product.ID)
}

func TestBuyNowRejectsOutOfStock(t *testing.T) {
	checkout, _, _, _ := newCheckoutFixture(t, ClearSelected, testProduct("1", 100, 0))

	err := checkout.BuyNow(sid, "1", "black", "M", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestBuyNowRejectsUnknownProduct(t *testing.T) {
	checkout, _, _, _ := newCheckoutFixture(t, ClearSelected, testProduct("1", 100, 5))

	err := checkout.BuyNow(sid, "missing", "black", "M", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitReverifiesStock(t *testing.T) {
	checkout, catalog, carts, orders := newCheckoutFixture(t, ClearSelected, testProduct("1", 100, 5))

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 4))

	// Stock drops after the line was added but before checkout.
	_, err := catalog.UpdateStock("1", 2)
	require.NoError(t, err)

	_, err = checkout.Submit(context.Background(), sid, testAddr())
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, orders.All(), "no order placed when stock fails")
}

func TestSubmitCancelledContextAbortsPayment(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Put("products", []models.Product{testProduct("1", 100, 5)}))

	catalog := NewCatalog(store)
	carts := NewCarts(store)
	orders := NewOrders(store)
	checkout := NewCheckout(catalog, carts, orders, store, SimulatedGateway{Delay: time.Second}, ClearSelected)

	require.NoError(t, carts.Add(sid, mustGet(t, catalog, "1"), "black", "M", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checkout.Submit(ctx, sid, testAddr())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, orders.All())
	assert.Len(t, carts.Items(sid), 1, "cart untouched when payment fails")
}

func mustGet(t *testing.T, catalog *Catalog, id string) models.Product {
	t.Helper()
	p, ok := catalog.Get(id)
	require.True(t, ok)
	return p
}
