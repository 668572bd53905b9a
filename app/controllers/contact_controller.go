package controllers

import (
	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/ctx"
	"github.com/looklush/storefront/pkg/event"
)

// ContactController serves the public contact card and the contact form.
type ContactController struct {
	contact  *services.Contact
	messages *services.Messages
}

func NewContactController(contact *services.Contact, messages *services.Messages) *ContactController {
	return &ContactController{contact: contact, messages: messages}
}

// Info returns the store's public contact card.
func (cc *ContactController) Info(c *ctx.Context) {
	c.Success(cc.contact.Info())
}

// Submit records a contact form message and notifies the back office.
func (cc *ContactController) Submit(c *ctx.Context) {
	var in models.ContactMessageInput
	if !c.BindJSON(&in) {
		return
	}

	msg := cc.messages.Add(in)
	event.Fire("message.received", msg)
	c.Created(map[string]string{"id": msg.ID, "message": "thanks, we will get back to you"})
}
