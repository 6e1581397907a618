package app

import (
	"context"
)

// Message is a plaintext notification handed to a Mailer.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers notification messages. Implementations must not
// return partial success: a nil error means the message was accepted.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
