package mail

import "context"

// Message is a single outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer delivers messages to a provider.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}
