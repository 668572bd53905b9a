package controllers

import (
	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
)

// AdminContactController manages the store's public contact card.
type AdminContactController struct {
	contact *services.Contact
	audit   *services.Audit
}

func NewAdminContactController(contact *services.Contact, audit *services.Audit) *AdminContactController {
	return &AdminContactController{contact: contact, audit: audit}
}

// Update patches the contact card. Only fields that actually changed
// land in the audit entry.
func (cc *AdminContactController) Update(c *ctx.Context) {
	var patch models.ContactInfoPatch
	if !c.BindJSON(&patch) {
		return
	}

	info, changes := cc.contact.Update(patch)
	if len(changes) > 0 {
		adminID, adminEmail := actor(c)
		cc.audit.Add(models.AuditEntry{
			AdminID:    adminID,
			AdminEmail: adminEmail,
			Action:     "contact.updated",
			Category:   models.AuditCategoryContact,
			Details: models.AuditDetails{
				Changes:     changes,
				Description: "updated contact information",
			},
		})
	}
	c.Success(info)
}

// AdminOrdersController gives the back office the full order book.
type AdminOrdersController struct {
	orders *services.Orders
}

func NewAdminOrdersController(orders *services.Orders) *AdminOrdersController {
	return &AdminOrdersController{orders: orders}
}

// List returns every order, newest last (insertion order).
func (oc *AdminOrdersController) List(c *ctx.Context) {
	c.Success(oc.orders.All())
}
