package handler

import (
	"net/http"
	"strconv"

	"rfxintake/internal/compliance"
)

// ThresholdsHandler exposes trade agreement threshold lookups
type ThresholdsHandler struct{}

// NewThresholdsHandler creates a new thresholds handler
func NewThresholdsHandler() *ThresholdsHandler {
	return &ThresholdsHandler{}
}

// Lookup handles GET /v1/thresholds?value=X
func (h *ThresholdsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		writeError(w, http.StatusBadRequest, "value must be a non-negative number")
		return
	}

	applicable := compliance.ApplicableThresholds(value)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"estimatedValue":     value,
		"applicable":         applicable,
		"minimumPostingDays": compliance.MinimumPostingDays(value),
	})
}
