package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"rfxintake/internal/model"
	"rfxintake/internal/service"
	"rfxintake/internal/transport/rest/middleware"
)

// ReviewHandler handles the procurement review endpoints
type ReviewHandler struct {
	reviewSvc *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewSvc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// Queue handles GET /v1/review/queue
func (h *ReviewHandler) Queue(w http.ResponseWriter, r *http.Request) {
	forms, err := h.reviewSvc.Queue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, forms)
}

// Get handles GET /v1/review/forms/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	form, err := h.reviewSvc.Get(r.Context(), formID)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// DecideRequest is the request body for a review decision
type DecideRequest struct {
	Status model.FormStatus `json:"status"`
}

// Decide handles POST /v1/review/forms/{id}/decision
func (h *ReviewHandler) Decide(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetRole(r.Context())
	formID := mux.Vars(r)["id"]

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := h.reviewSvc.Decide(r.Context(), role, formID, req.Status)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if errors.Is(err, service.ErrForbidden) {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Report handles GET /v1/review/forms/{id}/compliance
func (h *ReviewHandler) Report(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	snapshot, err := h.reviewSvc.Report(r.Context(), formID)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
