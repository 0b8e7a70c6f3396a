// Package notification delivers a Notification over one or more channels.
//
//	type OrderPlaced struct{ Order models.Order }
//	func (n *OrderPlaced) Via() []string { return []string{notification.ChannelMail, notification.ChannelSlack} }
//	func (n *OrderPlaced) ToMail() notification.MailData { ... }
//	func (n *OrderPlaced) ToSlack() notification.SlackData { ... }
//
//	notifier := notification.New(mailer, cfg.Notify.SlackWebhook)
//	errs := notifier.Send(ctx, customer.Email, &OrderPlaced{...})
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/http"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/mail"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

const (
	ChannelMail  = "mail"
	ChannelSlack = "slack"
)

// ------------------- Channel data structs -------------------

type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

type SlackData struct {
	WebhookURL  string // overrides the default webhook if set
	Text        string
	Attachments []SlackAttachment
}

type SlackAttachment struct {
	Color  string `json:"color,omitempty"` // good | warning | danger
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// ------------------- Notification interface -------------------

type Notification interface {
	// Via lists channel names: "mail", "slack".
	Via() []string
}

type Mailable interface {
	ToMail() MailData
}

type Slackable interface {
	ToSlack() SlackData
}

// ------------------- Notifier -------------------

// Notifier fans a notification out to its channels.
type Notifier struct {
	mail  mail.Sender
	slack *http.Client
	hook  string
}

// New builds a Notifier. mailer may be nil (mail channel fails) and
// slackWebhook may be empty (slack channel is skipped).
func New(mailer mail.Sender, slackWebhook string) *Notifier {
	return &Notifier{
		mail:  mailer,
		slack: http.NewClient("slack", "").WithTimeout(5 * time.Second),
		hook:  slackWebhook,
	}
}

// Send delivers n on every channel it names. One failing channel does not
// stop the others; all failures are returned.
func (nt *Notifier) Send(ctx context.Context, address string, n Notification) []error {
	log := logger.WithCtx(ctx)

	var errs []error
	for _, channel := range n.Via() {
		err := nt.dispatch(ctx, address, channel, n)
		switch {
		case errors.Is(err, errSkipped):
			metrics.NotificationsTotal.WithLabelValues(channel, "skipped").Inc()
		case err != nil:
			metrics.NotificationsTotal.WithLabelValues(channel, "failed").Inc()
			log.Error("notification: channel failed", "channel", channel, "type", fmt.Sprintf("%T", n), "error", err)
			errs = append(errs, err)
		default:
			metrics.NotificationsTotal.WithLabelValues(channel, "sent").Inc()
		}
	}
	return errs
}

var errSkipped = errors.New("notification: channel not configured")

func (nt *Notifier) dispatch(ctx context.Context, address, channel string, n Notification) error {
	switch channel {
	case ChannelMail:
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return nt.sendMail(ctx, address, m.ToMail())

	case ChannelSlack:
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return nt.sendSlack(ctx, s.ToSlack())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

// ------------------- Mail channel -------------------

func (nt *Notifier) sendMail(ctx context.Context, address string, d MailData) error {
	if nt.mail == nil {
		return fmt.Errorf("notification: mailer not configured")
	}
	to := d.To
	if to == "" {
		to = address
	}
	return mail.To(to).Subject(d.Subject).Body(d.Body).Text(d.Text).SendWith(ctx, nt.mail)
}

// ------------------- Slack channel -------------------

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func (nt *Notifier) sendSlack(ctx context.Context, d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = nt.hook
	}
	if url == "" {
		return errSkipped
	}

	resp, err := nt.slack.Post(url).
		Body(slackPayload{Text: d.Text, Attachments: d.Attachments}).
		WithContext(ctx).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return fmt.Errorf("notification: slack: %w", err)
	}
	return nil
}
