package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"rfxintake/internal/service"
	"rfxintake/internal/transport/rest/middleware"
	"rfxintake/internal/weights"
)

// WeightsHandler exposes rated-criteria weight allocation for a form
type WeightsHandler struct {
	formSvc *service.FormService
}

// NewWeightsHandler creates a new weights handler
func NewWeightsHandler(formSvc *service.FormService) *WeightsHandler {
	return &WeightsHandler{formSvc: formSvc}
}

// Metrics handles GET /v1/forms/{id}/weights
func (h *WeightsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	form, err := h.formSvc.Load(r.Context(), userID, formID)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics := weights.Compute(form.Requirements.Rated, form.Requirements.PriceWeight)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"metrics":       metrics,
		"optimalWeight": weights.OptimalWeight(len(form.Requirements.Rated), form.Requirements.PriceWeight),
	})
}

// Redistribute handles POST /v1/forms/{id}/weights/redistribute
func (h *WeightsHandler) Redistribute(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	form, err := h.formSvc.Load(r.Context(), userID, formID)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	form.Requirements.Rated = weights.Redistribute(form.Requirements.Rated, form.Requirements.PriceWeight)

	saved, err := h.formSvc.Save(r.Context(), userID, form)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, saved)
}
