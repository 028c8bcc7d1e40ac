package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// ChatRepository defines the interface for chat thread persistence.
type ChatRepository interface {
	Create(ctx context.Context, chat *entities.Chat) error
	GetByID(ctx context.Context, id string) (*entities.Chat, error)
	// FindByTriple looks up the thread for an (event, owner, caterer)
	// combination. Returns a NotFoundError when none exists yet.
	FindByTriple(ctx context.Context, eventID, ownerID, catererID string) (*entities.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Chat, error)
}
