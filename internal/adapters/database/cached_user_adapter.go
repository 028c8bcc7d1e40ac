package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/observability"
)

// CachedUserAdapter wraps UserAdapter with read-through caching. Profiles
// are read on every authenticated request and on every bid listing, so they
// cache well; writes invalidate the entry.
type CachedUserAdapter struct {
	adapter repositories.UserRepository
	cache   providers.CacheProvider
}

// NewCachedUserAdapter creates a new cached user adapter
func NewCachedUserAdapter(adapter repositories.UserRepository, cache providers.CacheProvider) repositories.UserRepository {
	return &CachedUserAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTL (in seconds)
const profileByIDTTL = 300 // 5 minutes for single profile

func profileCacheKey(id string) string {
	return fmt.Sprintf("profile:%s", id)
}

// Create inserts the profile and skips the cache; the first read fills it.
func (a *CachedUserAdapter) Create(ctx context.Context, user *entities.User) error {
	return a.adapter.Create(ctx, user)
}

// GetByID retrieves a profile by ID with caching
func (a *CachedUserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	cacheKey := profileCacheKey(id)

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var user entities.User
		if err := json.Unmarshal(cached, &user); err == nil {
			return &user, nil
		}
		// If unmarshal fails, continue to fetch from DB
		observability.LoggerFromContext(ctx).Warn().Str("profile_id", id).Msg("failed to unmarshal cached profile")
	}

	// Cache miss - fetch from database
	user, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(user); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, profileByIDTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Str("profile_id", id).Msg("failed to cache profile")
			}
		}
	}()

	return user, nil
}

// Update writes through to the database and invalidates the cached entry.
func (a *CachedUserAdapter) Update(ctx context.Context, user *entities.User) error {
	if err := a.adapter.Update(ctx, user); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, profileCacheKey(user.ID)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("profile_id", user.ID).Msg("failed to invalidate cached profile")
	}

	return nil
}
