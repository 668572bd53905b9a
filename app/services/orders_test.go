package services

import (
	"testing"
	"time"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(email string) models.Order {
	return models.Order{
		Items: []models.CartItem{{
			Product:  testProduct("1", 100, 10),
			Quantity: 1,
			Selected: true,
		}},
		Total:           108,
		Status:          models.OrderStatusPending,
		OrderDate:       time.Now(),
		ShippingAddress: models.ShippingAddress{Name: "Jane Doe", Email: email},
	}
}

func TestOrdersAddAssignsUniqueIDs(t *testing.T) {
	orders := NewOrders(kvstore.NewMemory())

	a := orders.Add(testOrder("a@example.com"))
	b := orders.Add(testOrder("b@example.com"))

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, orders.All(), 2)
}

func TestOrdersGetByID(t *testing.T) {
	orders := NewOrders(kvstore.NewMemory())

	placed := orders.Add(testOrder("a@example.com"))

	found, ok := orders.GetByID(placed.ID)
	require.True(t, ok)
	assert.Equal(t, placed.Total, found.Total)

	_, ok = orders.GetByID("missing")
	assert.False(t, ok)
}

func TestOrdersListByEmail(t *testing.T) {
	orders := NewOrders(kvstore.NewMemory())

	orders.Add(testOrder("jane@example.com"))
	orders.Add(testOrder("jane@example.com"))
	orders.Add(testOrder("other@example.com"))

	assert.Len(t, orders.ListByEmail("jane@example.com"), 2)
	assert.Empty(t, orders.ListByEmail("nobody@example.com"))
}

func TestOrdersPersistAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()
	orders := NewOrders(store)
	placed := orders.Add(testOrder("a@example.com"))

	reloaded := NewOrders(store)
	found, ok := reloaded.GetByID(placed.ID)
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPending, found.Status)
}
