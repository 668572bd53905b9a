package models

import "time"

// OrderStatus is the order lifecycle. The model carries it but no storefront
// operation advances it; progression is an external/back-office concern.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// ShippingAddress is snapshotted onto the order at checkout.
type ShippingAddress struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Order is a finalized purchase. Items are a snapshot of the checked-out
// cart lines; Total is derived from them at creation (subtotal × 1.08 tax)
// and never recomputed afterwards.
type Order struct {
	ID              string          `json:"id"`
	Items           []CartItem      `json:"items"`
	Total           float64         `json:"total"`
	Status          OrderStatus     `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}
