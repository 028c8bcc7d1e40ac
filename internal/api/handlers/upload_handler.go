package handlers

import (
	"net/http"

	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/application/services"
)

// UploadHandler handles file upload HTTP requests
type UploadHandler struct {
	mediaService *services.MediaService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(mediaService *services.MediaService) *UploadHandler {
	return &UploadHandler{
		mediaService: mediaService,
	}
}

// Upload handles POST /api/uploads/{bucket}
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	bucket := r.PathValue("bucket")
	if bucket == "" {
		respondWithError(w, http.StatusBadRequest, "bucket is required")
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.mediaService.Upload(
		r.Context(), auth, bucket, r.FormValue("chat_id"),
		header.Filename, header.Header.Get("Content-Type"), header.Size, file,
	)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// ListPortfolio handles GET /api/uploads/portfolio/{userId}
func (h *UploadHandler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	results, err := h.mediaService.ListPortfolio(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"files": results,
		"count": len(results),
	})
}

// RemovePortfolio handles DELETE /api/uploads/portfolio/{name}
func (h *UploadHandler) RemovePortfolio(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	name := r.PathValue("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "object name is required")
		return
	}

	if err := h.mediaService.RemovePortfolio(r.Context(), auth, name); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
