package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/application/services"
	"github.com/catermatch/backend/internal/domain/entities"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListMyChats handles GET /api/chats/mine
func (h *ChatHandler) ListMyChats(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	chats, err := h.chatService.ListMyChats(r.Context(), auth)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"chats": chats,
		"count": len(chats),
	})
}

// GetChat handles GET /api/chats/{id}
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	chatID := r.PathValue("id")
	if chatID == "" {
		respondWithError(w, http.StatusBadRequest, "chat ID is required")
		return
	}

	chat, err := h.chatService.GetChat(r.Context(), auth, chatID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, chat)
}

// ListMessages handles GET /api/chats/{id}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	chatID := r.PathValue("id")
	if chatID == "" {
		respondWithError(w, http.StatusBadRequest, "chat ID is required")
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), auth, chatID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

type sendMessageRequest struct {
	Text string                   `json:"text"`
	File *entities.FileAttachment `json:"file"`
}

// SendMessage handles POST /api/chats/{id}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	auth := middleware.AuthFrom(r.Context())

	chatID := r.PathValue("id")
	if chatID == "" {
		respondWithError(w, http.StatusBadRequest, "chat ID is required")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.chatService.SendMessage(r.Context(), auth, chatID, req.Text, req.File)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, message)
}
