package services

import (
	"testing"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sid = "test-session"

func testProduct(id string, price float64, stock int) models.Product {
	return models.Product{
		ID:            id,
		SKU:           "LLX-TST-" + id,
		Name:          "Product " + id,
		Price:         price,
		MinPrice:      price,
		MaxPrice:      price,
		StockQuantity: stock,
		InStock:       stock > 0,
	}
}

func TestAddMergesIdenticalLines(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())
	p := testProduct("1", 100, 10)

	require.NoError(t, carts.Add(sid, p, "black", "M", 1))
	require.NoError(t, carts.Add(sid, p, "black", "M", 2))

	items := carts.Items(sid)
	require.Len(t, items, 1, "identical keys merge into one line")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddKeepsDistinctVariantsApart(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())
	p := testProduct("1", 100, 10)

	require.NoError(t, carts.Add(sid, p, "black", "M", 1))
	require.NoError(t, carts.Add(sid, p, "black", "L", 1))
	require.NoError(t, carts.Add(sid, p, "navy", "M", 1))

	assert.Len(t, carts.Items(sid), 3)
}

func TestAddRejectsOverStock(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())
	p := testProduct("1", 100, 2)

	err := carts.Add(sid, p, "black", "M", 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, carts.Items(sid))
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())
	p := testProduct("1", 100, 10)

	require.NoError(t, carts.Add(sid, p, "black", "M", 2))
	require.NoError(t, carts.Add(sid, p, "navy", "M", 1))
	require.Len(t, carts.Items(sid), 2)

	require.NoError(t, carts.UpdateQuantity(sid, "1", "black", "M", 0))

	items := carts.Items(sid)
	require.Len(t, items, 1, "line count decreases by exactly one")
	assert.Equal(t, "navy", items[0].SelectedColor)
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())
	p := testProduct("1", 100, 10)

	require.NoError(t, carts.Add(sid, p, "black", "M", 2))
	require.NoError(t, carts.UpdateQuantity(sid, "1", "black", "M", 5))

	assert.Equal(t, 5, carts.Items(sid)[0].Quantity)
}

func TestRemoveDeletesByCompositeKey(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())
	p := testProduct("1", 100, 10)

	require.NoError(t, carts.Add(sid, p, "black", "M", 1))
	require.NoError(t, carts.Add(sid, p, "black", "L", 1))

	require.NoError(t, carts.Remove(sid, "1", "black", "M"))

	items := carts.Items(sid)
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].SelectedSize)
}

func TestSelectionTotals(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())

	require.NoError(t, carts.Add(sid, testProduct("1", 100, 10), "black", "M", 2))
	require.NoError(t, carts.Add(sid, testProduct("2", 50, 10), "gold", "One Size", 1))

	assert.Equal(t, 250.0, carts.TotalPrice(sid))
	assert.Equal(t, 3, carts.TotalItems(sid))

	// Deselect the second line; selected totals shrink, full totals don't.
	require.NoError(t, carts.ToggleSelection(sid, "2", "gold", "One Size"))
	assert.Equal(t, 200.0, carts.SelectedTotalPrice(sid))
	assert.Equal(t, 2, carts.SelectedTotalItems(sid))
	assert.Equal(t, 250.0, carts.TotalPrice(sid))

	require.NoError(t, carts.SelectAll(sid, true))
	assert.Equal(t, 250.0, carts.SelectedTotalPrice(sid))
}

func TestCartPersistsAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	carts := NewCarts(store)

	require.NoError(t, carts.Add(sid, testProduct("1", 100, 10), "black", "M", 2))

	reloaded := NewCarts(store)
	items := reloaded.Items(sid)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	carts := NewCarts(kvstore.NewMemory())

	require.NoError(t, carts.Add("alice", testProduct("1", 100, 10), "black", "M", 1))

	assert.Empty(t, carts.Items("bob"))
}
