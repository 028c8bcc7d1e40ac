package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// NotificationRepository records the audit trail of outbound emails.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.EmailNotification) error
	MarkSent(ctx context.Context, id, messageID string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	ListByEvent(ctx context.Context, eventID string) ([]*entities.EmailNotification, error)
}
