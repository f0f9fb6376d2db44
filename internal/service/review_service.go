package service

import (
	"context"
	"errors"
	"time"

	"rfxintake/internal/cache"
	"rfxintake/internal/compliance"
	"rfxintake/internal/model"
	"rfxintake/internal/repository"
)

var (
	ErrForbidden     = errors.New("role does not permit this action")
	ErrInvalidStatus = errors.New("invalid status transition")
)

// ReviewService is the procurement-side view of submitted forms:
// queue listing, status decisions, and compliance reports for forms
// the reviewer does not own.
type ReviewService struct {
	formRepo        repository.FormRepo
	complianceCache cache.ComplianceCache
	broadcaster     Broadcaster
}

// NewReviewService creates a new review service
func NewReviewService(formRepo repository.FormRepo, complianceCache cache.ComplianceCache) *ReviewService {
	return &ReviewService{
		formRepo:        formRepo,
		complianceCache: complianceCache,
	}
}

// SetBroadcaster sets the WebSocket broadcaster (called after hub initialization)
func (s *ReviewService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Queue returns all forms awaiting a decision.
func (s *ReviewService) Queue(ctx context.Context) ([]*model.IntakeForm, error) {
	return s.formRepo.GetByStatuses(ctx, []model.FormStatus{model.FormSubmitted, model.FormInReview})
}

// Get fetches any form by ID without the ownership check; the caller
// is role-gated at the transport layer.
func (s *ReviewService) Get(ctx context.Context, formID string) (*model.IntakeForm, error) {
	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// Decide moves a form through the review workflow. Claiming a form
// (submitted to in_review) takes a procurement lead; approving or
// rejecting takes an approver.
func (s *ReviewService) Decide(ctx context.Context, role model.Role, formID string, target model.FormStatus) (*model.IntakeForm, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}

	switch target {
	case model.FormInReview:
		if form.Status != model.FormSubmitted {
			return nil, ErrInvalidStatus
		}
		if role.Level() < model.RoleProcurementLead.Level() {
			return nil, ErrForbidden
		}
	case model.FormApproved, model.FormRejected:
		if form.Status != model.FormSubmitted && form.Status != model.FormInReview {
			return nil, ErrInvalidStatus
		}
		if role.Level() < model.RoleApprover.Level() {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrInvalidStatus
	}

	if err := s.formRepo.UpdateStatus(ctx, formID, target); err != nil {
		return nil, err
	}
	form.Status = target

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(form.UserID, "review_decision", form)
		s.broadcaster.BroadcastToForm(formID, "review_decision", form)
	}

	return form, nil
}

// Report evaluates a form's compliance for the review view, going
// through the shared snapshot cache.
func (s *ReviewService) Report(ctx context.Context, formID string) (*model.ComplianceSnapshot, error) {
	if snapshot, err := s.complianceCache.GetSnapshot(ctx, formID); err == nil && snapshot != nil {
		return snapshot, nil
	}

	form, err := s.Get(ctx, formID)
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
	s.complianceCache.SetSnapshot(ctx, snapshot)
	return snapshot, nil
}
