package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/catermatch/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var eventColumns = []interface{}{
	"id", "owner_id", "title", "description", "date", "guests",
	"city", "budget", "address", "photos", "status", "created_at",
}

// EventAdapter implements event persistence in Postgres.
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventAdapter creates a new event adapter.
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new event row.
func (a *EventAdapter) Create(ctx context.Context, event *entities.Event) error {
	if event == nil {
		return apperrors.NewInternalError("event is nil", fmt.Errorf("event is nil"))
	}

	record := goqu.Record{
		"id":          event.ID,
		"owner_id":    event.OwnerID,
		"title":       event.Title,
		"description": sql.NullString{String: event.Description, Valid: event.Description != ""},
		"date":        event.Date,
		"guests":      event.Guests,
		"city":        sql.NullString{String: event.City, Valid: event.City != ""},
		"budget":      event.Budget,
		"address":     sql.NullString{String: event.Address, Valid: event.Address != ""},
		"photos":      pq.StringArray(event.Photos),
		"status":      string(event.Status),
		"created_at":  event.CreatedAt,
	}

	query, args, err := a.db.Insert("events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create event", err)
	}

	return nil
}

// GetByID fetches an event by its id.
func (a *EventAdapter) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	query, args, err := a.db.Select(eventColumns...).From("events").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event select query", err)
	}

	event, err := scanEvent(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event not found: %s", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}

	return event, nil
}

// ListOpen returns open events for the caterer-facing job board, newest first.
func (a *EventAdapter) ListOpen(ctx context.Context, filter repositories.EventFilter) ([]*entities.Event, error) {
	ds := a.db.Select(eventColumns...).From("events").
		Where(goqu.Ex{"status": string(entities.EventStatusOpen)})

	if filter.City != "" {
		ds = ds.Where(goqu.C("city").ILike(filter.City))
	}

	ds = ds.Order(goqu.C("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event list query", err)
	}

	return a.queryEvents(ctx, query, args)
}

// ListByOwner returns all events posted by an owner, newest first.
func (a *EventAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Event, error) {
	query, args, err := a.db.Select(eventColumns...).From("events").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event list query", err)
	}

	return a.queryEvents(ctx, query, args)
}

// UpdateStatus flips the event status. Acceptance is the only caller that
// moves an event to booked.
func (a *EventAdapter) UpdateStatus(ctx context.Context, id string, status entities.EventStatus) error {
	query, args, err := a.db.Update("events").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event status update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update event status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("event not found: %s", id))
	}

	return nil
}

func (a *EventAdapter) queryEvents(ctx context.Context, query string, args []interface{}) ([]*entities.Event, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	defer rows.Close()

	events := []*entities.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate events", err)
	}

	return events, nil
}

func scanEvent(row rowScanner) (*entities.Event, error) {
	var (
		event       entities.Event
		description sql.NullString
		date        sql.NullTime
		guests      sql.NullInt64
		city        sql.NullString
		budget      sql.NullFloat64
		address     sql.NullString
		photos      pq.StringArray
	)

	err := row.Scan(
		&event.ID,
		&event.OwnerID,
		&event.Title,
		&description,
		&date,
		&guests,
		&city,
		&budget,
		&address,
		&photos,
		&event.Status,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Description = description.String
	if date.Valid {
		event.Date = &date.Time
	}
	if guests.Valid {
		g := int(guests.Int64)
		event.Guests = &g
	}
	event.City = city.String
	if budget.Valid {
		event.Budget = &budget.Float64
	}
	event.Address = address.String
	event.Photos = []string(photos)

	return &event, nil
}
