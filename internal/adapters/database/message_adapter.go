package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/catermatch/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

// MessageAdapter implements chat message persistence in Postgres. The file
// attachment descriptor is stored as a jsonb column; signed URLs are never
// written to the database.
type MessageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMessageAdapter creates a new message adapter.
func NewMessageAdapter(client *postgres.Client) repositories.MessageRepository {
	return &MessageAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a message to a chat thread.
func (a *MessageAdapter) Create(ctx context.Context, message *entities.Message) error {
	if message == nil {
		return apperrors.NewInternalError("message is nil", fmt.Errorf("message is nil"))
	}

	var file interface{}
	if message.File != nil {
		stored := *message.File
		stored.SignedURL = ""
		fileJSON, err := json.Marshal(stored)
		if err != nil {
			return apperrors.NewInternalError("failed to marshal attachment", err)
		}
		file = fileJSON
	}

	record := goqu.Record{
		"id":         message.ID,
		"chat_id":    message.ChatID,
		"sender_id":  message.SenderID,
		"text":       sql.NullString{String: message.Text, Valid: message.Text != ""},
		"file":       file,
		"created_at": message.CreatedAt,
	}

	query, args, err := a.db.Insert("messages").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build message insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create message", err)
	}

	return nil
}

// ListByChat returns the full thread in chronological order.
func (a *MessageAdapter) ListByChat(ctx context.Context, chatID string) ([]*entities.Message, error) {
	query, args, err := a.db.Select(
		"id", "chat_id", "sender_id", "text", "file", "created_at",
	).From("messages").
		Where(goqu.Ex{"chat_id": chatID}).
		Order(goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build message list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list messages", err)
	}
	defer rows.Close()

	messages := []*entities.Message{}
	for rows.Next() {
		var (
			message  entities.Message
			text     sql.NullString
			fileJSON []byte
		)
		err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.SenderID,
			&text,
			&fileJSON,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan message", err)
		}
		message.Text = text.String
		if len(fileJSON) > 0 {
			var file entities.FileAttachment
			if err := json.Unmarshal(fileJSON, &file); err != nil {
				return nil, apperrors.NewInternalError("failed to unmarshal attachment", err)
			}
			message.File = &file
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate messages", err)
	}

	return messages, nil
}
