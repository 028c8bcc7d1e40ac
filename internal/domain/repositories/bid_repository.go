package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// BidRepository defines the interface for bid persistence.
type BidRepository interface {
	Create(ctx context.Context, bid *entities.Bid) error
	GetByID(ctx context.Context, id string) (*entities.Bid, error)
	// ListByEvent returns all bids on an event, newest first, with the
	// caterer summary joined in for display.
	ListByEvent(ctx context.Context, eventID string) ([]*entities.Bid, error)
	ListByCaterer(ctx context.Context, catererID string) ([]*entities.Bid, error)
	UpdateStatus(ctx context.Context, id string, status entities.BidStatus) error
}
