package mail

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
)

// MailgunMailer sends messages through the Mailgun HTTP API.
type MailgunMailer struct {
	client *mailgun.MailgunImpl
	from   string
}

// NewMailgunMailer creates a new MailgunMailer.
func NewMailgunMailer(domain, apiKey, from string) *MailgunMailer {
	return &MailgunMailer{
		client: mailgun.NewMailgun(domain, apiKey),
		from:   from,
	}
}

// Send delivers a single message.
func (m *MailgunMailer) Send(ctx context.Context, msg *Message) error {
	message := mailgun.NewMessage(m.from, msg.Subject, "", msg.To)
	message.SetHTML(msg.HTML)

	_, _, err := m.client.Send(ctx, message)
	return err
}
