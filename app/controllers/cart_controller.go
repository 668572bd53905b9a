package controllers

import (
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/session"
)

// CartController manages the visitor's cart, keyed by the anonymous
// session cookie.
type CartController struct {
	carts   *services.Carts
	catalog *services.Catalog
}

func NewCartController(carts *services.Carts, catalog *services.Catalog) *CartController {
	return &CartController{carts: carts, catalog: catalog}
}

// cartView is the cart payload with its derived totals. Selected totals
// only count lines marked for checkout.
func (cc *CartController) cartView(sid string) map[string]interface{} {
	return map[string]interface{}{
		"items":              cc.carts.Items(sid),
		"totalPrice":         cc.carts.TotalPrice(sid),
		"totalItems":         cc.carts.TotalItems(sid),
		"selectedTotalPrice": cc.carts.SelectedTotalPrice(sid),
		"selectedTotalItems": cc.carts.SelectedTotalItems(sid),
	}
}

// View returns the current cart with totals.
func (cc *CartController) View(c *ctx.Context) {
	c.Success(cc.cartView(session.FromCtx(c.Context())))
}

type cartLineInput struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// Add puts a product line in the cart. Re-adding the same
// product+color+size merges quantities.
func (cc *CartController) Add(c *ctx.Context) {
	var in cartLineInput
	if !c.BindJSON(&in) {
		return
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	product, ok := cc.catalog.Get(in.ProductID)
	if !ok {
		c.NotFound("product not found")
		return
	}

	sid := session.FromCtx(c.Context())
	if err := cc.carts.Add(sid, product, in.Color, in.Size, in.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.cartView(sid))
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (cc *CartController) UpdateQuantity(c *ctx.Context) {
	var in cartLineInput
	if !c.BindJSON(&in) {
		return
	}

	sid := session.FromCtx(c.Context())
	if err := cc.carts.UpdateQuantity(sid, in.ProductID, in.Color, in.Size, in.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.cartView(sid))
}

// Remove deletes one line by its product+color+size key.
func (cc *CartController) Remove(c *ctx.Context) {
	sid := session.FromCtx(c.Context())
	err := cc.carts.Remove(sid, c.Param("productId"), c.Query("color"), c.Query("size"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.cartView(sid))
}

// Toggle flips one line's checkout selection.
func (cc *CartController) Toggle(c *ctx.Context) {
	sid := session.FromCtx(c.Context())
	err := cc.carts.ToggleSelection(sid, c.Param("productId"), c.Query("color"), c.Query("size"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.cartView(sid))
}

type selectAllInput struct {
	Selected bool `json:"selected"`
}

// SelectAll marks every line selected or deselected at once.
func (cc *CartController) SelectAll(c *ctx.Context) {
	var in selectAllInput
	if !c.BindJSON(&in) {
		return
	}

	sid := session.FromCtx(c.Context())
	if err := cc.carts.SelectAll(sid, in.Selected); err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.cartView(sid))
}

// Clear empties the cart.
func (cc *CartController) Clear(c *ctx.Context) {
	sid := session.FromCtx(c.Context())
	if err := cc.carts.Clear(sid); err != nil {
		fail(c, err)
		return
	}
	c.Success(cc.cartView(sid))
}
