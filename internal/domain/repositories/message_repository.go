package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// MessageRepository defines the interface for chat message persistence.
// Messages are append-only; there are no update or delete operations.
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	// ListByChat returns the full thread in chronological order.
	ListByChat(ctx context.Context, chatID string) ([]*entities.Message, error)
}
