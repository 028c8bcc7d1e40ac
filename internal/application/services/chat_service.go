package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/observability"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

const chatBucket = "chats"

// ChatService implements the per-pair message threads. Threads themselves
// are created by bid acceptance; this service only reads them and appends
// messages.
type ChatService struct {
	chatRepo     repositories.ChatRepository
	messageRepo  repositories.MessageRepository
	storage      providers.FileStorage
	signedURLTTL int
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	storage providers.FileStorage,
	signedURLTTL int,
) *ChatService {
	return &ChatService{
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		storage:      storage,
		signedURLTTL: signedURLTTL,
	}
}

// ListMyChats returns the threads the caller participates in.
func (s *ChatService) ListMyChats(ctx context.Context, auth *entities.AuthContext) ([]*entities.Chat, error) {
	return s.chatRepo.ListByUser(ctx, auth.UserID)
}

// GetChat fetches a thread, participants only.
func (s *ChatService) GetChat(ctx context.Context, auth *entities.AuthContext, chatID string) (*entities.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(auth.UserID) {
		return nil, apperrors.NewForbiddenError("not a participant of this chat")
	}
	return chat, nil
}

// ListMessages returns the full thread with a fresh signed URL computed for
// every attachment. Signed URLs are never stored, so each listing re-signs
// against the private bucket.
func (s *ChatService) ListMessages(ctx context.Context, auth *entities.AuthContext, chatID string) ([]*entities.Message, error) {
	if _, err := s.GetChat(ctx, auth, chatID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)
	for _, message := range messages {
		if message.File == nil || message.File.Path == "" {
			continue
		}
		signed, err := s.storage.SignedURL(ctx, chatBucket, message.File.Path, s.signedURLTTL)
		if err != nil {
			// A signing failure degrades the attachment link, not the thread.
			logger.Error().Err(err).Str("path", message.File.Path).Msg("failed to sign attachment URL")
			continue
		}
		message.File.SignedURL = signed
	}

	return messages, nil
}

// SendMessage appends a message to a thread. Either text or an attachment
// descriptor is required; messages are immutable once stored.
func (s *ChatService) SendMessage(ctx context.Context, auth *entities.AuthContext, chatID, text string, file *entities.FileAttachment) (*entities.Message, error) {
	if _, err := s.GetChat(ctx, auth, chatID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" && file == nil {
		return nil, apperrors.NewValidationError("message needs text or a file")
	}
	if file != nil && file.Path == "" {
		return nil, apperrors.NewValidationError("file attachment needs a storage path")
	}

	message := &entities.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  auth.UserID,
		Text:      text,
		File:      file,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}
