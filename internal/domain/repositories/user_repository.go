package repositories

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// UserRepository defines the interface for profile persistence.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	// Update replaces the caller-editable profile fields; identity fields
	// (id, role, email, display name) are set once at sign-up.
	Update(ctx context.Context, user *entities.User) error
}
