// Package notifications holds the storefront's customer-facing messages.
package notifications

import (
	"fmt"
	"html"

	"github.com/shashiranjanraj/storefront/pkg/notification"
)

// OrderPlaced tells a customer their checkout went through, and posts the
// order to the ops Slack channel when a webhook is configured.
type OrderPlaced struct {
	OrderID     uint
	ProductID   uint
	ProductName string
	Name        string
}

func (n *OrderPlaced) Via() []string {
	return []string{notification.ChannelMail, notification.ChannelSlack}
}

func (n *OrderPlaced) product() string {
	if n.ProductName != "" {
		return n.ProductName
	}
	return fmt.Sprintf("#%d", n.ProductID)
}

func (n *OrderPlaced) ToMail() notification.MailData {
	return notification.MailData{
		Subject: fmt.Sprintf("Pesanan #%d sedang diproses", n.OrderID),
		Body: fmt.Sprintf(
			"<p>Halo %s,</p><p>Terima kasih sudah berbelanja. Pesanan <b>#%d</b> untuk produk <b>%s</b> sedang kami proses.</p>",
			html.EscapeString(n.Name), n.OrderID, html.EscapeString(n.product())),
		Text: fmt.Sprintf("Halo %s, pesanan #%d untuk produk %s sedang kami proses.",
			n.Name, n.OrderID, n.product()),
	}
}

func (n *OrderPlaced) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order #%d", n.OrderID),
		Attachments: []notification.SlackAttachment{{
			Color:  "good",
			Title:  n.product(),
			Text:   fmt.Sprintf("Customer: %s", n.Name),
			Footer: "storefront",
		}},
	}
}
