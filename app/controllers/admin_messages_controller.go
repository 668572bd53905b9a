package controllers

import (
	"fmt"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/metrics"
)

// AdminMessagesController is the contact-form inbox.
type AdminMessagesController struct {
	messages *services.Messages
	audit    *services.Audit
}

func NewAdminMessagesController(messages *services.Messages, audit *services.Audit) *AdminMessagesController {
	return &AdminMessagesController{messages: messages, audit: audit}
}

// List returns the inbox, newest first, with the unread count.
func (mc *AdminMessagesController) List(c *ctx.Context) {
	c.Success(map[string]interface{}{
		"messages": mc.messages.All(),
		"unread":   mc.messages.UnreadCount(),
	})
}

// MarkRead flags a message as read.
func (mc *AdminMessagesController) MarkRead(c *ctx.Context) {
	msg, err := mc.messages.MarkRead(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	metrics.UnreadMessages.Set(float64(mc.messages.UnreadCount()))
	c.Success(msg)
}

// Delete removes a message from the inbox.
func (mc *AdminMessagesController) Delete(c *ctx.Context) {
	msg, err := mc.messages.Delete(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	metrics.UnreadMessages.Set(float64(mc.messages.UnreadCount()))

	adminID, adminEmail := actor(c)
	mc.audit.Add(models.AuditEntry{
		AdminID:    adminID,
		AdminEmail: adminEmail,
		Action:     "message.deleted",
		Category:   models.AuditCategoryMessage,
		Details: models.AuditDetails{
			ItemID:      msg.ID,
			ItemName:    msg.Subject,
			Description: fmt.Sprintf("deleted message %q from %s", msg.Subject, msg.Email),
		},
	})
	c.Success(map[string]string{"message": "message deleted"})
}
