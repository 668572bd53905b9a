// Package routes wires the HTTP surface: the public shop, the
// session-scoped cart and checkout, and the admin back office.
package routes

import (
	"net/http"

	"github.com/looklush/storefront/app/controllers"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/middleware"
	"github.com/looklush/storefront/pkg/rbac"
	"github.com/looklush/storefront/pkg/router"
	"github.com/looklush/storefront/pkg/ws"
)

// Controllers bundles everything the route table needs.
type Controllers struct {
	Auth     *controllers.AuthController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Contact  *controllers.ContactController
	GraphQL  *controllers.GraphQLController

	AdminProducts *controllers.AdminProductsController
	AdminUsers    *controllers.AdminUsersController
	AdminMessages *controllers.AdminMessagesController
	AdminAudit    *controllers.AdminAuditController
	AdminContact  *controllers.AdminContactController
	AdminOrders   *controllers.AdminOrdersController

	// EventFeed streams back-office events (orders, messages) to
	// connected admin dashboards.
	EventFeed *ws.Hub
}

// Register mounts the API on r.
func Register(r *router.Router, c Controllers) {
	api := r.Group("/api")

	// Public shop surface. No authentication; the session cookie alone
	// scopes carts and buy-now slots.
	api.Get("/products", "products.index", ctx.Wrap(c.Catalog.List))
	api.Get("/products/{id}", "products.show", ctx.Wrap(c.Catalog.Get))
	api.Post("/graphql", "graphql", ctx.Wrap(c.GraphQL.Query))
	api.Get("/contact", "contact.info", ctx.Wrap(c.Contact.Info))
	api.Post("/contact/messages", "contact.submit", ctx.Wrap(c.Contact.Submit))

	api.Post("/auth/login", "auth.login", ctx.Wrap(c.Auth.Login))
	api.Post("/auth/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))
	api.Get("/auth/me", "auth.me", ctx.Wrap(c.Auth.Me))

	api.Get("/cart", "cart.view", ctx.Wrap(c.Cart.View))
	api.Post("/cart/items", "cart.add", ctx.Wrap(c.Cart.Add))
	api.Put("/cart/items", "cart.quantity", ctx.Wrap(c.Cart.UpdateQuantity))
	api.Delete("/cart/items/{productId}", "cart.remove", ctx.Wrap(c.Cart.Remove))
	api.Post("/cart/items/{productId}/toggle", "cart.toggle", ctx.Wrap(c.Cart.Toggle))
	api.Post("/cart/select-all", "cart.selectAll", ctx.Wrap(c.Cart.SelectAll))
	api.Delete("/cart", "cart.clear", ctx.Wrap(c.Cart.Clear))

	api.Post("/checkout/buy-now", "checkout.buyNow", ctx.Wrap(c.Checkout.BuyNow))
	api.Post("/checkout", "checkout.submit", ctx.Wrap(c.Checkout.Submit))
	api.Get("/orders", "orders.index", ctx.Wrap(c.Checkout.Orders))
	api.Get("/orders/{id}", "orders.show", ctx.Wrap(c.Checkout.Order))

	// Back office. Authenticate resolves the bearer token or the
	// logged-in session; rbac then requires the admin role.
	admin := api.Group("/admin", middleware.Authenticate, rbac.HasRole("admin"))

	admin.Post("/products", "admin.products.create", ctx.Wrap(c.AdminProducts.Create))
	admin.Put("/products/{id}", "admin.products.update", ctx.Wrap(c.AdminProducts.Update))
	admin.Delete("/products/{id}", "admin.products.delete", ctx.Wrap(c.AdminProducts.Delete))
	admin.Put("/products/{id}/stock", "admin.products.stock", ctx.Wrap(c.AdminProducts.UpdateStock))
	admin.Post("/products/{id}/images", "admin.products.image", ctx.Wrap(c.AdminProducts.UploadImage))
	admin.Get("/products/next-sku", "admin.products.sku", ctx.Wrap(c.AdminProducts.GenerateSKU))

	admin.Get("/orders", "admin.orders.index", ctx.Wrap(c.AdminOrders.List))

	admin.Get("/users", "admin.users.index", ctx.Wrap(c.AdminUsers.List))
	admin.Post("/users", "admin.users.create", ctx.Wrap(c.AdminUsers.Create))
	admin.Put("/users/{id}", "admin.users.update", ctx.Wrap(c.AdminUsers.Update))
	admin.Delete("/users/{id}", "admin.users.delete", ctx.Wrap(c.AdminUsers.Delete))
	admin.Post("/users/{id}/toggle", "admin.users.toggle", ctx.Wrap(c.AdminUsers.ToggleStatus))

	admin.Get("/messages", "admin.messages.index", ctx.Wrap(c.AdminMessages.List))
	admin.Post("/messages/{id}/read", "admin.messages.read", ctx.Wrap(c.AdminMessages.MarkRead))
	admin.Delete("/messages/{id}", "admin.messages.delete", ctx.Wrap(c.AdminMessages.Delete))

	admin.Put("/contact", "admin.contact.update", ctx.Wrap(c.AdminContact.Update))

	admin.Get("/audit", "admin.audit.index", ctx.Wrap(c.AdminAudit.List))
	admin.Delete("/audit", "admin.audit.clear", ctx.Wrap(c.AdminAudit.Clear))

	if c.EventFeed != nil {
		feed := middleware.Authenticate(rbac.HasRole("admin")(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ws.Upgrade(w, r, c.EventFeed)
			})))
		r.HandleFunc("/ws/admin/events", feed.ServeHTTP)
	}
}
