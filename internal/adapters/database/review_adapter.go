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
)

var reviewColumns = []interface{}{
	"id", "event_id", "owner_id", "caterer_id", "rating", "comment",
	"created_at", "updated_at",
}

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new review row.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", fmt.Errorf("review is nil"))
	}

	record := goqu.Record{
		"id":         review.ID,
		"event_id":   review.EventID,
		"owner_id":   review.OwnerID,
		"caterer_id": review.CatererID,
		"rating":     review.Rating,
		"comment":    sql.NullString{String: review.Comment, Valid: review.Comment != ""},
		"created_at": review.CreatedAt,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// Update rewrites the rating and comment of an existing review in place.
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	if review == nil {
		return apperrors.NewInternalError("review is nil", fmt.Errorf("review is nil"))
	}

	record := goqu.Record{
		"rating":     review.Rating,
		"comment":    sql.NullString{String: review.Comment, Valid: review.Comment != ""},
		"updated_at": time.Now().UTC(),
	}

	query, args, err := a.db.Update("reviews").
		Set(record).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("review not found: %s", review.ID))
	}

	return nil
}

// FindByTriple returns the existing review for an (event, owner, caterer)
// combination.
func (a *ReviewAdapter) FindByTriple(ctx context.Context, eventID, ownerID, catererID string) (*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{
			"event_id":   eventID,
			"owner_id":   ownerID,
			"caterer_id": catererID,
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review lookup query", err)
	}

	review, err := scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review not found for event %s", eventID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to find review", err)
	}

	return review, nil
}

// ListByCaterer returns all reviews received by a caterer, newest first.
func (a *ReviewAdapter) ListByCaterer(ctx context.Context, catererID string) ([]*entities.Review, error) {
	query, args, err := a.db.Select(reviewColumns...).From("reviews").
		Where(goqu.Ex{"caterer_id": catererID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}

func scanReview(row rowScanner) (*entities.Review, error) {
	var (
		review  entities.Review
		comment sql.NullString
	)

	err := row.Scan(
		&review.ID,
		&review.EventID,
		&review.OwnerID,
		&review.CatererID,
		&review.Rating,
		&comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.Comment = comment.String
	return &review, nil
}
