package controllers

import (
	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/session"
)

// CheckoutController runs buy-now staging, order submission and the
// order lookups.
type CheckoutController struct {
	checkout *services.Checkout
	orders   *services.Orders
}

func NewCheckoutController(checkout *services.Checkout, orders *services.Orders) *CheckoutController {
	return &CheckoutController{checkout: checkout, orders: orders}
}

type buyNowInput struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// BuyNow stages a single line for the next checkout, bypassing the cart.
// The staged line expires if checkout is not reached in time.
func (cc *CheckoutController) BuyNow(c *ctx.Context) {
	var in buyNowInput
	if !c.BindJSON(&in) {
		return
	}

	sid := session.FromCtx(c.Context())
	if err := cc.checkout.BuyNow(sid, in.ProductID, in.Color, in.Size, in.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "ready for checkout"})
}

// Submit finalises the purchase. A pending buy-now line wins over the
// cart; otherwise the selected cart lines are checked out.
func (cc *CheckoutController) Submit(c *ctx.Context) {
	var addr models.ShippingAddress
	if !c.BindJSON(&addr) {
		return
	}

	sid := session.FromCtx(c.Context())
	order, err := cc.checkout.Submit(c.Context(), sid, addr)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// Orders lists the orders placed under the given email. Admins see the
// whole book via the admin surface instead.
func (cc *CheckoutController) Orders(c *ctx.Context) {
	email := c.Query("email")
	if email == "" {
		c.Success([]models.Order{})
		return
	}
	c.Success(cc.orders.ListByEmail(email))
}

// Order returns a single order by ID.
func (cc *CheckoutController) Order(c *ctx.Context) {
	order, ok := cc.orders.GetByID(c.Param("id"))
	if !ok {
		c.NotFound("order not found")
		return
	}
	c.Success(order)
}
