package entities

import "time"

// UserRole represents the marketplace role of a user
type UserRole string

const (
	UserRoleOwner   UserRole = "owner"
	UserRoleCaterer UserRole = "caterer"
)

// User represents a marketplace profile. The row id equals the id issued by
// the external auth provider at sign-up; rows are never deleted in-app.
type User struct {
	ID          string   `json:"id" db:"id"`
	Role        UserRole `json:"role" db:"role"`
	DisplayName string   `json:"display_name" db:"display_name"`
	Email       string   `json:"email" db:"email"`

	// Caterer profile fields, empty for owners.
	CompanyName string   `json:"company_name,omitempty" db:"company_name"`
	Bio         string   `json:"bio,omitempty" db:"bio"`
	Specialties []string `json:"specialties,omitempty" db:"specialties"`
	LogoURL     string   `json:"logo_url,omitempty" db:"logo_url"`
	City        string   `json:"city,omitempty" db:"city"`
	Website     string   `json:"website,omitempty" db:"website"`
	MinPrice    *float64 `json:"min_price,omitempty" db:"min_price"`
	PriceNote   string   `json:"price_note,omitempty" db:"price_note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CatererSummary is the slice of a caterer profile embedded in bid listings.
type CatererSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CompanyName string `json:"company_name,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}
