package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/catermatch/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var userColumns = []interface{}{
	"id", "role", "display_name", "email",
	"company_name", "bio", "specialties", "logo_url",
	"city", "website", "min_price", "price_note",
	"created_at", "updated_at",
}

// UserAdapter implements profile persistence in Postgres.
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new profile row.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	if user == nil {
		return apperrors.NewInternalError("user is nil", fmt.Errorf("user is nil"))
	}

	record := goqu.Record{
		"id":           user.ID,
		"role":         string(user.Role),
		"display_name": user.DisplayName,
		"email":        user.Email,
		"company_name": sql.NullString{String: user.CompanyName, Valid: user.CompanyName != ""},
		"bio":          sql.NullString{String: user.Bio, Valid: user.Bio != ""},
		"specialties":  pq.StringArray(user.Specialties),
		"logo_url":     sql.NullString{String: user.LogoURL, Valid: user.LogoURL != ""},
		"city":         sql.NullString{String: user.City, Valid: user.City != ""},
		"website":      sql.NullString{String: user.Website, Valid: user.Website != ""},
		"min_price":    user.MinPrice,
		"price_note":   sql.NullString{String: user.PriceNote, Valid: user.PriceNote != ""},
		"created_at":   user.CreatedAt,
		"updated_at":   user.UpdatedAt,
	}

	query, args, err := a.db.Insert("profiles").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build profile insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create profile", err)
	}

	return nil
}

// GetByID fetches a profile by its id.
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).From("profiles").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build profile select query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile not found: %s", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}

	return user, nil
}

// Update replaces the caller-editable profile fields.
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	if user == nil {
		return apperrors.NewInternalError("user is nil", fmt.Errorf("user is nil"))
	}

	record := goqu.Record{
		"company_name": sql.NullString{String: user.CompanyName, Valid: user.CompanyName != ""},
		"bio":          sql.NullString{String: user.Bio, Valid: user.Bio != ""},
		"specialties":  pq.StringArray(user.Specialties),
		"logo_url":     sql.NullString{String: user.LogoURL, Valid: user.LogoURL != ""},
		"city":         sql.NullString{String: user.City, Valid: user.City != ""},
		"website":      sql.NullString{String: user.Website, Valid: user.Website != ""},
		"min_price":    user.MinPrice,
		"price_note":   sql.NullString{String: user.PriceNote, Valid: user.PriceNote != ""},
		"updated_at":   time.Now().UTC(),
	}

	query, args, err := a.db.Update("profiles").Set(record).Where(goqu.Ex{"id": user.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build profile update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("profile not found: %s", user.ID))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*entities.User, error) {
	var (
		user        entities.User
		companyName sql.NullString
		bio         sql.NullString
		specialties pq.StringArray
		logoURL     sql.NullString
		city        sql.NullString
		website     sql.NullString
		minPrice    sql.NullFloat64
		priceNote   sql.NullString
	)

	err := row.Scan(
		&user.ID,
		&user.Role,
		&user.DisplayName,
		&user.Email,
		&companyName,
		&bio,
		&specialties,
		&logoURL,
		&city,
		&website,
		&minPrice,
		&priceNote,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.CompanyName = companyName.String
	user.Bio = bio.String
	user.Specialties = []string(specialties)
	user.LogoURL = logoURL.String
	user.City = city.String
	user.Website = website.String
	if minPrice.Valid {
		user.MinPrice = &minPrice.Float64
	}
	user.PriceNote = priceNote.String

	return &user, nil
}
