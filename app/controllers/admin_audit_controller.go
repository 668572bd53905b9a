package controllers

import (
	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
)

// AdminAuditController exposes the administrative audit trail.
type AdminAuditController struct {
	audit *services.Audit
}

func NewAdminAuditController(audit *services.Audit) *AdminAuditController {
	return &AdminAuditController{audit: audit}
}

// List returns the audit log, newest first. ?category= and ?adminId=
// narrow the result.
func (ac *AdminAuditController) List(c *ctx.Context) {
	if category := c.Query("category"); category != "" {
		c.Success(ac.audit.ByCategory(models.AuditCategory(category)))
		return
	}
	if adminID := c.Query("adminId"); adminID != "" {
		c.Success(ac.audit.ByAdmin(adminID))
		return
	}
	c.Success(ac.audit.All())
}

// Clear wipes the log. The wipe itself is recorded as the first entry of
// the fresh log.
func (ac *AdminAuditController) Clear(c *ctx.Context) {
	if err := ac.audit.Clear(); err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	ac.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "audit.cleared",
		Category:   models.AuditCategorySystem,
		Details:    models.AuditDetails{Description: "audit log cleared"},
	})
	c.Success(map[string]string{"message": "audit log cleared"})
}
