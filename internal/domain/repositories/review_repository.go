package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	Update(ctx context.Context, review *entities.Review) error
	// FindByTriple returns the existing review for an (event, owner, caterer)
	// combination, or a NotFoundError when the owner has not reviewed yet.
	FindByTriple(ctx context.Context, eventID, ownerID, catererID string) (*entities.Review, error)
	ListByCaterer(ctx context.Context, catererID string) ([]*entities.Review, error)
}
