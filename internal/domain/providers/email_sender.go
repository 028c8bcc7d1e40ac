package providers

import "context"

// EmailSender delivers transactional email. Implementations return the
// provider-assigned message id on success.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}
