package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rfxintake/internal/cache"
	"rfxintake/internal/compliance"
	"rfxintake/internal/model"
	"rfxintake/internal/repository"
)

var ErrFormNotFound = errors.New("form not found")

// FormService owns intake form persistence, validation, and the
// cached compliance evaluation.
type FormService struct {
	formRepo        repository.FormRepo
	complianceCache cache.ComplianceCache
	draftCache      cache.DraftCache
	broadcaster     Broadcaster
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, complianceCache cache.ComplianceCache, draftCache cache.DraftCache) *FormService {
	return &FormService{
		formRepo:        formRepo,
		complianceCache: complianceCache,
		draftCache:      draftCache,
	}
}

// SetBroadcaster sets the WebSocket broadcaster (called after hub initialization)
func (s *FormService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create stores a new form for the user. A missing title is derived
// from the background text.
func (s *FormService) Create(ctx context.Context, userID string, form *model.IntakeForm) (*model.IntakeForm, error) {
	form.UserID = userID
	form.Title = deriveTitle(form.Title, form.Background)
	if form.Status == "" {
		form.Status = model.FormDraft
	}

	id, err := s.formRepo.Create(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}
	form.ID = id
	return form, nil
}

// Save persists changes to an existing form and invalidates its
// cached compliance snapshot, since any edit can change the outcome.
func (s *FormService) Save(ctx context.Context, userID string, form *model.IntakeForm) (*model.IntakeForm, error) {
	existing, err := s.formRepo.GetByID(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrFormNotFound
	}
	if existing.UserID != userID {
		return nil, ErrFormNotFound
	}

	form.UserID = existing.UserID
	form.CreatedAt = existing.CreatedAt
	form.Title = deriveTitle(form.Title, form.Background)
	if form.Status == model.FormDraft {
		form.Status = model.FormInProgress
	}

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}

	// Best effort, a stale snapshot expires on its own.
	s.complianceCache.DeleteSnapshot(ctx, form.ID)

	return form, nil
}

// Load fetches a form by ID, restricted to its owner.
func (s *FormService) Load(ctx context.Context, userID, formID string) (*model.IntakeForm, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil || form.UserID != userID {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// ListForUser returns the user's forms, most recently updated first.
func (s *FormService) ListForUser(ctx context.Context, userID string) ([]*model.IntakeForm, error) {
	return s.formRepo.GetByUserID(ctx, userID)
}

// SaveDraft stashes an unsaved working copy in Redis.
func (s *FormService) SaveDraft(ctx context.Context, userID string, form *model.IntakeForm) error {
	return s.draftCache.SetDraft(ctx, userID, form)
}

// LoadDraft returns the user's stashed working copy, or nil.
func (s *FormService) LoadDraft(ctx context.Context, userID string) (*model.IntakeForm, error) {
	return s.draftCache.GetDraft(ctx, userID)
}

// Submit moves an owned form into the review queue. Only draft and
// in-progress forms can be submitted.
func (s *FormService) Submit(ctx context.Context, userID, formID string) (*model.IntakeForm, error) {
	form, err := s.Load(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	if form.Status != model.FormDraft && form.Status != model.FormInProgress {
		return nil, fmt.Errorf("form in status %s cannot be submitted", form.Status)
	}

	validation := Validate(form)
	if !validation.IsValid {
		return nil, fmt.Errorf("form is incomplete: %v", validation.Errors)
	}

	if err := s.formRepo.UpdateStatus(ctx, formID, model.FormSubmitted); err != nil {
		return nil, err
	}
	form.Status = model.FormSubmitted

	s.draftCache.DeleteDraft(ctx, userID)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToForm(formID, "form_submitted", form)
	}

	return form, nil
}

// EvaluateCompliance runs the compliance engine over the form,
// serving a cached snapshot when one is fresh.
func (s *FormService) EvaluateCompliance(ctx context.Context, userID, formID string) (*model.ComplianceSnapshot, error) {
	if snapshot, err := s.complianceCache.GetSnapshot(ctx, formID); err == nil && snapshot != nil {
		return snapshot, nil
	}

	form, err := s.Load(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	result := compliance.Evaluate(form)
	status, message := compliance.StatusOf(result)

	snapshot := &model.ComplianceSnapshot{
		FormID:      formID,
		Result:      result,
		Status:      status,
		Message:     message,
		EvaluatedAt: time.Now(),
	}

	// Cache write is best effort, evaluation already succeeded.
	s.complianceCache.SetSnapshot(ctx, snapshot)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToForm(formID, "compliance_update", snapshot)
	}

	return snapshot, nil
}

// Validate checks the form for submission readiness. Problems are
// returned as messages so callers can validate on every keystroke.
func Validate(form *model.IntakeForm) model.ValidationResult {
	var errs []string

	if form.Background == "" {
		errs = append(errs, "Project background is required")
	}
	if form.CommodityType == "" {
		errs = append(errs, "Commodity type is required")
	}
	if form.StartDate != nil && form.EndDate != nil && !form.EndDate.After(*form.StartDate) {
		errs = append(errs, "End date must be after start date")
	}
	if form.StartDate != nil && form.StartDate.Before(time.Now().Truncate(24*time.Hour)) {
		errs = append(errs, "Start date cannot be in the past")
	}
	if form.Requirements.PriceWeight < 0 || form.Requirements.PriceWeight > 100 {
		errs = append(errs, "Price weight must be between 0 and 100")
	}

	return model.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// deriveTitle keeps an explicit title, otherwise cuts one from the
// background text.
func deriveTitle(title, background string) string {
	if title != "" {
		return title
	}
	if background == "" {
		return "New RFx Intake Form"
	}
	if len(background) > 100 {
		return background[:100] + "..."
	}
	return background
}
