package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// EventFilter narrows event listings.
type EventFilter struct {
	City   string
	Limit  int
	Offset int
}

// EventRepository defines the interface for event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	GetByID(ctx context.Context, id string) (*entities.Event, error)
	ListOpen(ctx context.Context, filter EventFilter) ([]*entities.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Event, error)
	// UpdateStatus is the only mutation events support after creation.
	UpdateStatus(ctx context.Context, id string, status entities.EventStatus) error
}
