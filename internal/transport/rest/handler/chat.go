package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rfxintake/internal/model"
	"rfxintake/internal/service"
	"rfxintake/internal/transport/rest/middleware"
)

// ChatHandler handles scope-chat endpoints
type ChatHandler struct {
	chatSvc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// SendMessageRequest is the request body for a chat message
type SendMessageRequest struct {
	Message string `json:"message"`
}

// SendMessageResponse pairs the assistant reply with any suggestions
// stored for review.
type SendMessageResponse struct {
	Reply       *model.AssistantReply `json:"reply"`
	Suggestions []*model.Suggestion   `json:"suggestions,omitempty"`
}

// Send handles POST /v1/forms/{id}/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, suggestions, err := h.chatSvc.SendMessage(r.Context(), userID, formID, req.Message)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SendMessageResponse{Reply: reply, Suggestions: suggestions})
}

// History handles GET /v1/forms/{id}/chat
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	messages, err := h.chatSvc.History(r.Context(), userID, formID, limit)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// Clear handles DELETE /v1/forms/{id}/chat
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	err := h.chatSvc.ClearHistory(r.Context(), userID, formID)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
