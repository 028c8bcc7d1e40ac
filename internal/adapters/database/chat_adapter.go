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
)

var chatColumns = []interface{}{
	"id", "event_id", "owner_id", "caterer_id", "created_at",
}

// ChatAdapter implements chat thread persistence in Postgres.
type ChatAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewChatAdapter creates a new chat adapter.
func NewChatAdapter(client *postgres.Client) repositories.ChatRepository {
	return &ChatAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new chat thread.
func (a *ChatAdapter) Create(ctx context.Context, chat *entities.Chat) error {
	if chat == nil {
		return apperrors.NewInternalError("chat is nil", fmt.Errorf("chat is nil"))
	}

	record := goqu.Record{
		"id":         chat.ID,
		"event_id":   chat.EventID,
		"owner_id":   chat.OwnerID,
		"caterer_id": chat.CatererID,
		"created_at": chat.CreatedAt,
	}

	query, args, err := a.db.Insert("chats").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build chat insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create chat", err)
	}

	return nil
}

// GetByID fetches a chat by its id.
func (a *ChatAdapter) GetByID(ctx context.Context, id string) (*entities.Chat, error) {
	query, args, err := a.db.Select(chatColumns...).From("chats").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build chat select query", err)
	}

	chat, err := scanChat(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("chat not found: %s", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get chat", err)
	}

	return chat, nil
}

// FindByTriple looks up the thread for an (event, owner, caterer) combination.
func (a *ChatAdapter) FindByTriple(ctx context.Context, eventID, ownerID, catererID string) (*entities.Chat, error) {
	query, args, err := a.db.Select(chatColumns...).From("chats").
		Where(goqu.Ex{
			"event_id":   eventID,
			"owner_id":   ownerID,
			"caterer_id": catererID,
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build chat lookup query", err)
	}

	chat, err := scanChat(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("chat not found for event %s", eventID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to find chat", err)
	}

	return chat, nil
}

// ListByUser returns all chats a user participates in, newest first.
func (a *ChatAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Chat, error) {
	query, args, err := a.db.Select(chatColumns...).From("chats").
		Where(goqu.Or(
			goqu.Ex{"owner_id": userID},
			goqu.Ex{"caterer_id": userID},
		)).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build chat list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list chats", err)
	}
	defer rows.Close()

	chats := []*entities.Chat{}
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan chat", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate chats", err)
	}

	return chats, nil
}

func scanChat(row rowScanner) (*entities.Chat, error) {
	var chat entities.Chat
	err := row.Scan(
		&chat.ID,
		&chat.EventID,
		&chat.OwnerID,
		&chat.CatererID,
		&chat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
