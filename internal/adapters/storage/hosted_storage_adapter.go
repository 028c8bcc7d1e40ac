package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/pkg/config"
)

// Bucket names used by the application. The chats bucket is private and
// only reachable through signed URLs; the rest serve public assets.
const (
	BucketEvents    = "events"
	BucketProfiles  = "profiles"
	BucketPortfolio = "portfolio"
	BucketChats     = "chats"
)

// HostedStorageAdapter implements FileStorage against a Supabase-compatible
// storage HTTP API.
type HostedStorageAdapter struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewHostedStorageAdapter creates a new hosted storage adapter
func NewHostedStorageAdapter(cfg *config.StorageConfig) (providers.FileStorage, error) {
	if cfg.BaseURL == "" || cfg.ServiceKey == "" {
		return nil, fmt.Errorf("STORAGE_BASE_URL and STORAGE_SERVICE_KEY must be set")
	}

	return &HostedStorageAdapter{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Upload stores an object and returns its bucket-relative path.
func (a *HostedStorageAdapter) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s/object/%s/%s", a.baseURL, bucket, path)

	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return path, nil
}

type listRequest struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type listEntry struct {
	Name      string `json:"name"`
	UpdatedAt string `json:"updated_at"`
	Metadata  struct {
		Size int64 `json:"size"`
	} `json:"metadata"`
}

// List returns the objects under a prefix within a bucket.
func (a *HostedStorageAdapter) List(ctx context.Context, bucket, prefix string) ([]providers.StoredObject, error) {
	url := fmt.Sprintf("%s/object/list/%s", a.baseURL, bucket)

	jsonData, err := json.Marshal(listRequest{Prefix: prefix, Limit: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage API error (status %d): %s", resp.StatusCode, string(body))
	}

	var entries []listEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	objects := make([]providers.StoredObject, 0, len(entries))
	for _, e := range entries {
		objectPath := e.Name
		if prefix != "" {
			objectPath = strings.TrimSuffix(prefix, "/") + "/" + e.Name
		}
		objects = append(objects, providers.StoredObject{
			Name:      e.Name,
			Path:      objectPath,
			Size:      e.Metadata.Size,
			UpdatedAt: e.UpdatedAt,
		})
	}

	return objects, nil
}

type removeRequest struct {
	Prefixes []string `json:"prefixes"`
}

// Remove deletes the given paths from a bucket.
func (a *HostedStorageAdapter) Remove(ctx context.Context, bucket string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	url := fmt.Sprintf("%s/object/%s", a.baseURL, bucket)

	jsonData, err := json.Marshal(removeRequest{Prefixes: paths})
	if err != nil {
		return fmt.Errorf("failed to marshal remove request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "DELETE", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create remove request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to remove objects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage API error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// PublicURL returns the stable URL for an object in a public bucket.
func (a *HostedStorageAdapter) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", a.baseURL, bucket, path)
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// SignedURL returns a time-limited URL for an object in a private bucket.
func (a *HostedStorageAdapter) SignedURL(ctx context.Context, bucket, path string, expiresInSeconds int) (string, error) {
	url := fmt.Sprintf("%s/object/sign/%s/%s", a.baseURL, bucket, path)

	jsonData, err := json.Marshal(signRequest{ExpiresIn: expiresInSeconds})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create sign request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to sign object URL: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage API error (status %d): %s", resp.StatusCode, string(body))
	}

	var signed signResponse
	if err := json.Unmarshal(body, &signed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// The API returns a path relative to the storage root.
	return a.baseURL + signed.SignedURL, nil
}
