package mailer

import "context"

// Message is a single outbound email. HTMLBody is optional; when set the
// message is sent as multipart/alternative.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers a single message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
