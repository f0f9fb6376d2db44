package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"rfxintake/internal/model"
	"rfxintake/internal/service"
	"rfxintake/internal/suggestion"
	"rfxintake/internal/transport/rest/middleware"
)

// SuggestionHandler handles AI suggestion review endpoints
type SuggestionHandler struct {
	suggestionSvc *service.SuggestionService
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(suggestionSvc *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionSvc: suggestionSvc}
}

// List handles GET /v1/forms/{id}/suggestions
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	suggestions, err := h.suggestionSvc.ListForForm(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// ResolveRequest is the request body for resolving a suggestion
type ResolveRequest struct {
	Status  model.SuggestionStatus `json:"status"`
	Content json.RawMessage        `json:"content,omitempty"`
}

// Resolve handles POST /v1/suggestions/{id}/resolve
func (h *SuggestionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	suggestionID := mux.Vars(r)["id"]

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resolved, err := h.suggestionSvc.Resolve(r.Context(), userID, suggestionID, req.Status, req.Content)
	if errors.Is(err, service.ErrSuggestionNotFound) {
		writeError(w, http.StatusNotFound, "suggestion not found")
		return
	}
	if errors.Is(err, suggestion.ErrInvalidTransition) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resolved)
}
