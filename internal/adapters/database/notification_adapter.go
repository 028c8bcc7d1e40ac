package database

import (
	"context"
	"fmt"
	"time"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/catermatch/backend/pkg/errors"
	"github.com/jmoiron/sqlx"
)

// NotificationAdapter persists the outbound email audit trail. It uses sqlx
// struct scanning since notification rows map one-to-one onto the entity.
type NotificationAdapter struct {
	db *sqlx.DB
}

// NewNotificationAdapter creates a new notification adapter.
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create inserts a pending notification row before the send attempt.
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.EmailNotification) error {
	if notification == nil {
		return apperrors.NewInternalError("notification is nil", fmt.Errorf("notification is nil"))
	}

	query := `
		INSERT INTO email_notifications
			(id, notification_type, recipient, subject, event_id, bid_id, status, created_at, updated_at)
		VALUES
			(:id, :notification_type, :recipient, :subject, :event_id, :bid_id, :status, :created_at, :updated_at)`

	if _, err := a.db.NamedExecContext(ctx, query, notification); err != nil {
		return apperrors.NewInternalError("failed to create notification record", err)
	}

	return nil
}

// MarkSent records a successful delivery with the provider message id.
func (a *NotificationAdapter) MarkSent(ctx context.Context, id, messageID string) error {
	now := time.Now().UTC()
	result, err := a.db.ExecContext(ctx, `
		UPDATE email_notifications
		SET status = $1, message_id = $2, sent_at = $3, updated_at = $3
		WHERE id = $4`,
		entities.NotificationStatusSent, messageID, now, id,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notification sent", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("notification not found: %s", id))
	}

	return nil
}

// MarkFailed records a failed delivery with the provider error. Failed rows
// are never retried.
func (a *NotificationAdapter) MarkFailed(ctx context.Context, id, errorMessage string) error {
	now := time.Now().UTC()
	result, err := a.db.ExecContext(ctx, `
		UPDATE email_notifications
		SET status = $1, error_message = $2, failed_at = $3, updated_at = $3
		WHERE id = $4`,
		entities.NotificationStatusFailed, errorMessage, now, id,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notification failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("notification not found: %s", id))
	}

	return nil
}

// ListByEvent returns the audit trail for one event, newest first.
func (a *NotificationAdapter) ListByEvent(ctx context.Context, eventID string) ([]*entities.EmailNotification, error) {
	notifications := []*entities.EmailNotification{}
	err := a.db.SelectContext(ctx, &notifications, `
		SELECT id, notification_type, recipient, subject, event_id, bid_id,
		       status, message_id, error_message, sent_at, failed_at,
		       created_at, updated_at
		FROM email_notifications
		WHERE event_id = $1
		ORDER BY created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}

	return notifications, nil
}
