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

// FormHandler handles intake form endpoints
type FormHandler struct {
	formSvc   *service.FormService
	autosaver *service.Autosaver
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService, autosaver *service.Autosaver) *FormHandler {
	return &FormHandler{
		formSvc:   formSvc,
		autosaver: autosaver,
	}
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var form model.IntakeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.formSvc.Create(r.Context(), userID, &form)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	forms, err := h.formSvc.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, forms)
}

// Get handles GET /v1/forms/{id}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, form)
}

// Update handles PUT /v1/forms/{id}
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	var form model.IntakeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = formID

	saved, err := h.formSvc.Save(r.Context(), userID, &form)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.autosaver.Cancel(userID)
	writeJSON(w, http.StatusOK, saved)
}

// Autosave handles PUT /v1/forms/{id}/draft
func (h *FormHandler) Autosave(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	var form model.IntakeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = formID
	form.UserID = userID

	h.autosaver.Schedule(userID, form)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// GetDraft handles GET /v1/forms/draft
func (h *FormHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	draft, err := h.formSvc.LoadDraft(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if draft == nil {
		writeError(w, http.StatusNotFound, "no draft found")
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// Validate handles POST /v1/forms/{id}/validate
func (h *FormHandler) Validate(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, service.Validate(form))
}

// Submit handles POST /v1/forms/{id}/submit
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	form, err := h.formSvc.Submit(r.Context(), userID, formID)
	if errors.Is(err, service.ErrFormNotFound) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Compliance handles GET /v1/forms/{id}/compliance
func (h *FormHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	formID := mux.Vars(r)["id"]

	snapshot, err := h.formSvc.EvaluateCompliance(r.Context(), userID, formID)
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
