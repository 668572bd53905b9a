// Package notifications defines the back-office notifications fired by
// storefront events: new contact messages and products running dry.
package notifications

import (
	"fmt"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/notification"
)

// NewMessageNotification pings the back office when the contact form is
// submitted.
type NewMessageNotification struct {
	Message models.ContactMessage
}

func (n NewMessageNotification) Via() []string { return []string{"mail", "slack"} }

func (n NewMessageNotification) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("New contact message: %s", n.Message.Subject),
		Body: fmt.Sprintf("<p><strong>%s</strong> (%s) wrote:</p><blockquote>%s</blockquote>",
			n.Message.Name, n.Message.Email, n.Message.Message),
		Text: fmt.Sprintf("%s (%s) wrote: %s", n.Message.Name, n.Message.Email, n.Message.Message),
	}
}

func (n NewMessageNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New contact message from %s", n.Message.Name),
		Attachments: []notification.SlackAttachment{{
			Title:  n.Message.Subject,
			Text:   n.Message.Message,
			Footer: n.Message.Email,
		}},
	}
}

// LowStockNotification warns when an order leaves a product at or below
// the reorder threshold.
type LowStockNotification struct {
	Product   models.Product
	Threshold int
}

func (n LowStockNotification) Via() []string { return []string{"slack"} }

func (n LowStockNotification) ToSlack() notification.SlackData {
	color := "warning"
	if n.Product.StockQuantity == 0 {
		color = "danger"
	}
	return notification.SlackData{
		Text: fmt.Sprintf("Low stock: %s", n.Product.Name),
		Attachments: []notification.SlackAttachment{{
			Color: color,
			Title: fmt.Sprintf("%s (%s)", n.Product.Name, n.Product.SKU),
			Text:  fmt.Sprintf("%d left in stock (threshold %d)", n.Product.StockQuantity, n.Threshold),
		}},
	}
}
