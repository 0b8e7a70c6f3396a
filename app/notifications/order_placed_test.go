package notifications_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/app/notifications"
	"github.com/shashiranjanraj/storefront/pkg/notification"
)

func TestOrderPlacedMail(t *testing.T) {
	n := &notifications.OrderPlaced{OrderID: 12, ProductID: 4, Name: "<Budi>"}

	m := n.ToMail()
	assert.Equal(t, "Pesanan #12 sedang diproses", m.Subject)
	assert.Contains(t, m.Body, "&lt;Budi&gt;")
	assert.Contains(t, m.Body, "#4")
	assert.Contains(t, m.Text, "<Budi>")
}

func TestOrderPlacedChannels(t *testing.T) {
	n := &notifications.OrderPlaced{OrderID: 12, ProductName: "Kemeja"}
	assert.Equal(t, []string{notification.ChannelMail, notification.ChannelSlack}, n.Via())
	assert.Equal(t, "Kemeja", n.ToSlack().Attachments[0].Title)
}
