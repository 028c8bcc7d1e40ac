package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/observability"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

// Review submissions per owner per window. Generous; the limit only exists
// to stop scripted rating churn.
const (
	reviewRateLimit  = 20
	reviewRateWindow = 3600 // seconds
)

// ReviewService implements owner reviews of booked caterers. A review is
// an upsert keyed on the (event, owner, caterer) triple and is only allowed
// once the event has an accepted bid.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	bidRepo    repositories.BidRepository
	eventRepo  repositories.EventRepository
	cache      providers.CacheProvider
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bidRepo repositories.BidRepository,
	eventRepo repositories.EventRepository,
	cache providers.CacheProvider,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		bidRepo:    bidRepo,
		eventRepo:  eventRepo,
		cache:      cache,
	}
}

// PlaceReview creates or replaces the caller's review of the caterer whose
// bid was accepted for the event.
func (s *ReviewService) PlaceReview(ctx context.Context, auth *entities.AuthContext, eventID string, rating int, comment string) (*entities.Review, error) {
	if !auth.IsOwner() {
		return nil, apperrors.NewForbiddenError("only owners can place reviews")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != auth.UserID {
		return nil, apperrors.NewForbiddenError("only the event owner can review its caterer")
	}

	catererID, err := s.acceptedCaterer(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRateLimit(ctx, auth.UserID); err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByTriple(ctx, eventID, auth.UserID, catererID)
	if err == nil {
		existing.Rating = rating
		existing.Comment = comment
		existing.UpdatedAt = time.Now().UTC()
		if err := s.reviewRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if apperrors.TypeOf(err) != apperrors.ErrorTypeNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	review := &entities.Review{
		ID:        uuid.New().String(),
		EventID:   eventID,
		OwnerID:   auth.UserID,
		CatererID: catererID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// ListCatererReviews returns the public review list for a caterer.
func (s *ReviewService) ListCatererReviews(ctx context.Context, catererID string) ([]*entities.Review, error) {
	return s.reviewRepo.ListByCaterer(ctx, catererID)
}

// acceptedCaterer resolves which caterer won the event. No accepted bid
// means reviewing is not open yet.
func (s *ReviewService) acceptedCaterer(ctx context.Context, eventID string) (string, error) {
	bids, err := s.bidRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	for _, bid := range bids {
		if bid.Status == entities.BidStatusAccepted {
			return bid.CatererID, nil
		}
	}
	return "", apperrors.NewConflictError("event has no accepted bid to review")
}

// checkRateLimit counts submissions per owner in a fixed window. A cache
// outage fails open.
func (s *ReviewService) checkRateLimit(ctx context.Context, ownerID string) error {
	if s.cache == nil {
		return nil
	}

	key := fmt.Sprintf("reviews:rate:%s", ownerID)
	count, err := s.cache.Increment(ctx, key, reviewRateWindow)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("review rate limit check failed")
		return nil
	}
	if count > reviewRateLimit {
		return apperrors.NewValidationError("too many review submissions, try again later")
	}

	return nil
}
