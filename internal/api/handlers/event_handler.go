package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/application/services"
	"github.com/catermatch/backend/internal/domain/repositories"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	var input services.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), auth, &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

// ListOpenEvents handles GET /api/events/open
func (h *EventHandler) ListOpenEvents(w http.ResponseWriter, r *http.Request) {
	filter := repositories.EventFilter{
		City: r.URL.Query().Get("city"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = offset
	}

	events, err := h.eventService.ListOpenEvents(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// ListMyEvents handles GET /api/events/mine
func (h *EventHandler) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	events, err := h.eventService.ListMyEvents(r.Context(), auth)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}
