package controllers

import (
	"fmt"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
)

// AdminUsersController manages storefront accounts.
type AdminUsersController struct {
	users *services.Users
	audit *services.Audit
}

func NewAdminUsersController(users *services.Users, audit *services.Audit) *AdminUsersController {
	return &AdminUsersController{users: users, audit: audit}
}

// List returns every account without credential material.
func (uc *AdminUsersController) List(c *ctx.Context) {
	c.Success(uc.users.All())
}

// Create adds an account. The password is hashed before it is stored.
func (uc *AdminUsersController) Create(c *ctx.Context) {
	var in models.UserInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := uc.users.Add(in)
	if err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	uc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "user.created",
		Category:   models.AuditCategoryUser,
		Details: models.AuditDetails{
			ItemID:      user.ID,
			ItemName:    user.Email,
			Description: fmt.Sprintf("created account %s", user.Email),
		},
	})
	c.Created(user.Public())
}

// Update patches an account.
func (uc *AdminUsersController) Update(c *ctx.Context) {
	var patch services.UserPatch
	if !c.BindJSON(&patch) {
		return
	}

	user, err := uc.users.Update(c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	uc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "user.updated",
		Category:   models.AuditCategoryUser,
		Details: models.AuditDetails{
			ItemID:      user.ID,
			ItemName:    user.Email,
			Description: fmt.Sprintf("updated account %s", user.Email),
		},
	})
	c.Success(user.Public())
}

// Delete removes an account. The built-in admin is refused.
func (uc *AdminUsersController) Delete(c *ctx.Context) {
	id := c.Param("id")
	user, _ := uc.users.GetByID(id)

	if err := uc.users.Delete(id); err != nil {
		fail(c, err)
		return
	}

	adminID, adminEmail := actor(c)
	uc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "user.deleted",
		Category:   models.AuditCategoryUser,
		Details: models.AuditDetails{
			ItemID:      id,
			ItemName:    user.Email,
			Description: fmt.Sprintf("deleted account %s", user.Email),
		},
	})
	c.Success(map[string]string{"message": "user deleted"})
}

// ToggleStatus flips an account's active flag.
func (uc *AdminUsersController) ToggleStatus(c *ctx.Context) {
	user, err := uc.users.ToggleStatus(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}

	adminID, adminEmail := actor(c)
	uc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "user.status_toggled",
		Category:   models.AuditCategoryUser,
		Details: models.AuditDetails{
			ItemID:   user.ID,
			ItemName: user.Email,
			Changes: []models.FieldChange{{
				Field:    "isActive",
				OldValue: !user.IsActive,
				NewValue: user.IsActive,
			}},
			Description: fmt.Sprintf("%s account %s", state, user.Email),
		},
	})
	c.Success(user.Public())
}
