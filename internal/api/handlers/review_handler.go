package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/application/services"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

type placeReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// PlaceReview handles PUT /api/events/{id}/review
func (h *ReviewHandler) PlaceReview(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	eventID := r.PathValue("id")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var req placeReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewService.PlaceReview(r.Context(), auth, eventID, req.Rating, req.Comment)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, review)
}

// ListCatererReviews handles GET /api/caterers/{id}/reviews
func (h *ReviewHandler) ListCatererReviews(w http.ResponseWriter, r *http.Request) {
	catererID := r.PathValue("id")
	if catererID == "" {
		respondWithError(w, http.StatusBadRequest, "caterer ID is required")
		return
	}

	reviews, err := h.reviewService.ListCatererReviews(r.Context(), catererID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
