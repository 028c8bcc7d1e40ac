package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

// EventService implements posting and browsing catering events.
type EventService struct {
	eventRepo repositories.EventRepository
	activity  *ActivityPublisher
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository, activity *ActivityPublisher) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		activity:  activity,
	}
}

// CreateEventInput carries the owner-supplied event fields.
type CreateEventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Guests      *int       `json:"guests"`
	City        string     `json:"city"`
	Budget      *float64   `json:"budget"`
	Address     string     `json:"address"`
	Photos      []string   `json:"photos"`
}

// CreateEvent posts a new event. Events open for bidding immediately.
func (s *EventService) CreateEvent(ctx context.Context, auth *entities.AuthContext, input *CreateEventInput) (*entities.Event, error) {
	if !auth.IsOwner() {
		return nil, apperrors.NewForbiddenError("only owners can post events")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("event title is required")
	}
	if input.Guests != nil && *input.Guests <= 0 {
		return nil, apperrors.NewValidationError("guest count must be greater than zero")
	}
	if input.Budget != nil && *input.Budget <= 0 {
		return nil, apperrors.NewValidationError("budget must be greater than zero")
	}

	event := &entities.Event{
		ID:          uuid.New().String(),
		OwnerID:     auth.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date,
		Guests:      input.Guests,
		City:        input.City,
		Budget:      input.Budget,
		Address:     input.Address,
		Photos:      input.Photos,
		Status:      entities.EventStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if event.Photos == nil {
		event.Photos = []string{}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.activity.EventCreated(ctx, event)

	return event, nil
}

// GetEvent fetches a single event.
func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListOpenEvents returns the caterer-facing job board, optionally filtered
// by city.
func (s *EventService) ListOpenEvents(ctx context.Context, filter repositories.EventFilter) ([]*entities.Event, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	return s.eventRepo.ListOpen(ctx, filter)
}

// ListMyEvents returns the events posted by the calling owner.
func (s *EventService) ListMyEvents(ctx context.Context, auth *entities.AuthContext) ([]*entities.Event, error) {
	if !auth.IsOwner() {
		return nil, apperrors.NewForbiddenError("only owners have posted events")
	}
	return s.eventRepo.ListByOwner(ctx, auth.UserID)
}
