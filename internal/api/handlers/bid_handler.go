package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/application/services"
)

// BidHandler handles bid-related HTTP requests
type BidHandler struct {
	bidService *services.BidService
}

// NewBidHandler creates a new bid handler
func NewBidHandler(bidService *services.BidService) *BidHandler {
	return &BidHandler{
		bidService: bidService,
	}
}

type submitBidRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

// SubmitBid handles POST /api/events/{id}/bids
func (h *BidHandler) SubmitBid(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	eventID := r.PathValue("id")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var req submitBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.bidService.SubmitBid(r.Context(), auth, eventID, req.Amount, req.Message)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, bid)
}

// AcceptBid handles POST /api/events/{id}/bids/{bidId}/accept
func (h *BidHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	eventID := r.PathValue("id")
	bidID := r.PathValue("bidId")
	if eventID == "" || bidID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID and bid ID are required")
		return
	}

	result, err := h.bidService.AcceptBid(r.Context(), auth, eventID, bidID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// RejectBid handles POST /api/events/{id}/bids/{bidId}/reject
func (h *BidHandler) RejectBid(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	eventID := r.PathValue("id")
	bidID := r.PathValue("bidId")
	if eventID == "" || bidID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID and bid ID are required")
		return
	}

	bid, err := h.bidService.RejectBid(r.Context(), auth, eventID, bidID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, bid)
}

// ListEventBids handles GET /api/events/{id}/bids
func (h *BidHandler) ListEventBids(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	eventID := r.PathValue("id")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	bids, err := h.bidService.ListEventBids(r.Context(), auth, eventID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bids":  bids,
		"count": len(bids),
	})
}

// ListMyBids handles GET /api/bids/mine
func (h *BidHandler) ListMyBids(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	bids, err := h.bidService.ListMyBids(r.Context(), auth)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bids":  bids,
		"count": len(bids),
	})
}
