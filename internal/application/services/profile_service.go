package services

import (
	"context"
	"strings"
	"time"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

// ProfileService implements marketplace profile management. Profiles are
// created once per auth-provider account and keyed on that account's id.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
	}
}

// CreateProfileInput carries the sign-up fields.
type CreateProfileInput struct {
	Role        entities.UserRole `json:"role"`
	DisplayName string            `json:"display_name"`
	Email       string            `json:"email"`
	CompanyName string            `json:"company_name"`
	City        string            `json:"city"`
}

// UpdateProfileInput carries the caller-editable profile fields.
type UpdateProfileInput struct {
	CompanyName string   `json:"company_name"`
	Bio         string   `json:"bio"`
	Specialties []string `json:"specialties"`
	LogoURL     string   `json:"logo_url"`
	City        string   `json:"city"`
	Website     string   `json:"website"`
	MinPrice    *float64 `json:"min_price"`
	PriceNote   string   `json:"price_note"`
}

// CreateProfile registers the caller's profile after sign-up. The row id is
// the id the auth provider issued.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string, input *CreateProfileInput) (*entities.User, error) {
	if input.Role != entities.UserRoleOwner && input.Role != entities.UserRoleCaterer {
		return nil, apperrors.NewValidationError("role must be owner or caterer")
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		return nil, apperrors.NewValidationError("display name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err == nil {
		return nil, apperrors.NewConflictError("profile already exists")
	} else if apperrors.TypeOf(err) != apperrors.ErrorTypeNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:          userID,
		Role:        input.Role,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Email:       strings.TrimSpace(input.Email),
		CompanyName: input.CompanyName,
		City:        input.City,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetProfile fetches a profile by id. Profiles are public within the
// marketplace.
func (s *ProfileService) GetProfile(ctx context.Context, id string) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile replaces the caller's editable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, auth *entities.AuthContext, input *UpdateProfileInput) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, auth.UserID)
	if err != nil {
		return nil, err
	}

	if input.MinPrice != nil && *input.MinPrice < 0 {
		return nil, apperrors.NewValidationError("minimum price cannot be negative")
	}

	user.CompanyName = input.CompanyName
	user.Bio = input.Bio
	user.Specialties = input.Specialties
	user.LogoURL = input.LogoURL
	user.City = input.City
	user.Website = input.Website
	user.MinPrice = input.MinPrice
	user.PriceNote = input.PriceNote

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
