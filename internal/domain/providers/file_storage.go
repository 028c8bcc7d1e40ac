package providers

import (
	"context"
	"io"
)

// StoredObject describes one object in a storage bucket listing.
type StoredObject struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// FileStorage defines the interface for bucket-backed file storage.
// The events, profiles and portfolio buckets are public; chats is private
// and only reachable through signed URLs.
type FileStorage interface {
	// Upload stores an object and returns its bucket-relative path.
	Upload(ctx context.Context, bucket, path string, contentType string, body io.Reader) (string, error)

	// List returns the objects under a prefix within a bucket.
	List(ctx context.Context, bucket, prefix string) ([]StoredObject, error)

	// Remove deletes the given paths from a bucket.
	Remove(ctx context.Context, bucket string, paths []string) error

	// PublicURL returns the stable URL for an object in a public bucket.
	PublicURL(bucket, path string) string

	// SignedURL returns a time-limited URL for an object in a private
	// bucket. The URL expires after expiresInSeconds.
	SignedURL(ctx context.Context, bucket, path string, expiresInSeconds int) (string, error)
}
