package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

// Buckets the upload surface accepts. events, profiles and portfolio serve
// public assets; chats holds private attachments behind signed URLs.
var uploadBuckets = map[string]bool{
	"events":    true,
	"profiles":  true,
	"portfolio": true,
	"chats":     true,
}

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

const maxUploadBytes = 10 << 20 // 10 MiB

// UploadResult describes a stored object as returned to the client.
type UploadResult struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	Name   string `json:"name"`
	// URL is the public URL for public buckets and empty for chats, whose
	// objects are only reachable through per-message signed URLs.
	URL string `json:"url,omitempty"`
}

// MediaService implements file uploads into the storage buckets. Public
// bucket objects are namespaced under the uploader's id, chat attachments
// under their chat id.
type MediaService struct {
	storage  providers.FileStorage
	chatRepo repositories.ChatRepository
}

// NewMediaService creates a new media service
func NewMediaService(storage providers.FileStorage, chatRepo repositories.ChatRepository) *MediaService {
	return &MediaService{
		storage:  storage,
		chatRepo: chatRepo,
	}
}

// Upload stores a file in the given bucket. Chat uploads name the target
// chat and are limited to its two participants.
func (s *MediaService) Upload(ctx context.Context, auth *entities.AuthContext, bucket, chatID, filename, contentType string, size int64, body io.Reader) (*UploadResult, error) {
	if !uploadBuckets[bucket] {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown bucket: %s", bucket))
	}
	if filename == "" {
		return nil, apperrors.NewValidationError("filename is required")
	}
	if size > maxUploadBytes {
		return nil, apperrors.NewValidationError("file exceeds the 10 MiB upload limit")
	}
	// Public buckets only hold images; chat attachments may be any type.
	if bucket != "chats" && !imageContentTypes[contentType] {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported content type: %s", contentType))
	}

	prefix := auth.UserID
	if bucket == "chats" {
		if chatID == "" {
			return nil, apperrors.NewValidationError("chat ID is required for chat uploads")
		}
		chat, err := s.chatRepo.GetByID(ctx, chatID)
		if err != nil {
			return nil, err
		}
		if !chat.HasParticipant(auth.UserID) {
			return nil, apperrors.NewForbiddenError("only chat participants can upload attachments")
		}
		prefix = chat.ID
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], sanitizedExt(filename))
	objectPath := fmt.Sprintf("%s/%s", prefix, name)

	stored, err := s.storage.Upload(ctx, bucket, objectPath, contentType, body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to store file", err)
	}

	result := &UploadResult{
		Bucket: bucket,
		Path:   stored,
		Name:   name,
	}
	if bucket != "chats" {
		result.URL = s.storage.PublicURL(bucket, stored)
	}

	return result, nil
}

// ListPortfolio returns a caterer's portfolio images with public URLs.
func (s *MediaService) ListPortfolio(ctx context.Context, userID string) ([]*UploadResult, error) {
	objects, err := s.storage.List(ctx, "portfolio", userID)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to list portfolio", err)
	}

	results := make([]*UploadResult, 0, len(objects))
	for _, obj := range objects {
		results = append(results, &UploadResult{
			Bucket: "portfolio",
			Path:   obj.Path,
			Name:   obj.Name,
			URL:    s.storage.PublicURL("portfolio", obj.Path),
		})
	}

	return results, nil
}

// RemovePortfolio deletes one of the caller's own portfolio images.
func (s *MediaService) RemovePortfolio(ctx context.Context, auth *entities.AuthContext, name string) error {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return apperrors.NewValidationError("invalid portfolio object name")
	}

	objectPath := fmt.Sprintf("%s/%s", auth.UserID, name)
	if err := s.storage.Remove(ctx, "portfolio", []string{objectPath}); err != nil {
		return apperrors.NewExternalError("failed to remove portfolio object", err)
	}

	return nil
}

// sanitizedExt keeps only a plain extension from the client filename; the
// stored name is otherwise server-generated.
func sanitizedExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
