// Package jobs defines the storefront's background jobs. Each job type is
// registered by name at boot so queue workers can rebuild it from its
// serialized payload.
package jobs

import (
	"fmt"
	"strings"

	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/pkg/logger"
	"github.com/looklush/storefront/pkg/mail"
	"github.com/looklush/storefront/pkg/queue"
)

// RegisterAll makes every job type known to the queue. Called once at boot,
// before workers start.
func RegisterAll() {
	// The registry key must match the %T of the dispatched value.
	queue.Register("*jobs.OrderConfirmationJob", func() queue.Job { return &OrderConfirmationJob{} })
}

// OrderConfirmationJob emails the buyer after checkout. It carries the full
// order snapshot so the worker never has to read the store.
type OrderConfirmationJob struct {
	Order models.Order `json:"order"`
}

func (j *OrderConfirmationJob) Handle() error {
	addr := j.Order.ShippingAddress
	if addr.Email == "" {
		logger.Warn("order confirmation: order has no email, skipping", "order_id", j.Order.ID)
		return nil
	}

	err := mail.To(addr.Email).
		Subject(fmt.Sprintf("Order %s confirmed", j.Order.ID)).
		Body(orderConfirmationBody(j.Order)).
		Send()
	if err != nil {
		return fmt.Errorf("order confirmation %s: %w", j.Order.ID, err)
	}

	logger.Info("order confirmation sent", "order_id", j.Order.ID, "to", addr.Email)
	return nil
}

func orderConfirmationBody(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thanks for your order, %s!</h2>", order.ShippingAddress.Name)
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong> placed on %s.</p>", order.ID, order.OrderDate.Format("2 Jan 2006"))
	b.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d × %s", item.Quantity, item.Product.Name)
		if item.SelectedColor != "" || item.SelectedSize != "" {
			fmt.Fprintf(&b, " (%s %s)", item.SelectedColor, item.SelectedSize)
		}
		fmt.Fprintf(&b, ": $%.2f</li>", item.LineTotal())
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Total (incl. tax): <strong>$%.2f</strong></p>", order.Total)
	return b.String()
}
