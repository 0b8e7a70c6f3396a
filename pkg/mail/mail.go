// Package mail sends email over SMTP with wneessen/go-mail.
//
//	mailer := mail.New(cfg.Mail)
//	err := mail.To("budi@example.com").
//	    Subject("Order #7 received").
//	    Body("<p>Thanks!</p>").
//	    Text("Thanks!").
//	    SendWith(ctx, mailer)
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/shashiranjanraj/storefront/config"
)

// ErrNoRecipients is returned for a message without To addresses.
var ErrNoRecipients = errors.New("mail: no recipients")

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// ------------------- Message -------------------

// Message is a fluent builder for an email.
type Message struct {
	to      []string
	subject string
	html    string
	text    string
}

func To(addresses ...string) *Message {
	return &Message{to: addresses}
}

func (m *Message) Subject(s string) *Message {
	m.subject = s
	return m
}

// Body sets the HTML part.
func (m *Message) Body(html string) *Message {
	m.html = html
	return m
}

// Text sets the plain-text part (alternative when Body is set).
func (m *Message) Text(text string) *Message {
	m.text = text
	return m
}

// Recipients returns the To addresses.
func (m *Message) Recipients() []string { return m.to }

// SubjectLine returns the subject.
func (m *Message) SubjectLine() string { return m.subject }

// SendWith hands the message to s.
func (m *Message) SendWith(ctx context.Context, s Sender) error {
	return s.Send(ctx, m)
}

// ------------------- Mailer -------------------

// Mailer delivers messages through the configured SMTP server.
type Mailer struct {
	cfg config.Mail
}

func New(cfg config.Mail) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send dials the server, sends msg and hangs up.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	gm, err := m.build(msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("mail: client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, gm); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

func (m *Mailer) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(15 * time.Second),
	}

	switch m.cfg.TLS {
	case "ssl":
		opts = append(opts, gomail.WithSSL())
	case "none":
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

func (m *Mailer) build(msg *Message) (*gomail.Msg, error) {
	if len(msg.to) == 0 {
		return nil, ErrNoRecipients
	}

	gm := gomail.NewMsg()
	if err := gm.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return nil, fmt.Errorf("mail: from: %w", err)
	}
	if err := gm.To(msg.to...); err != nil {
		return nil, fmt.Errorf("mail: to: %w", err)
	}
	gm.Subject(msg.subject)

	switch {
	case msg.html != "":
		gm.SetBodyString(gomail.TypeTextHTML, msg.html)
		if msg.text != "" {
			gm.AddAlternativeString(gomail.TypeTextPlain, msg.text)
		}
	default:
		gm.SetBodyString(gomail.TypeTextPlain, msg.text)
	}
	return gm, nil
}
