package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfxintake/internal/model"
)

type complianceCacheStub struct {
	snapshots map[string]*model.ComplianceSnapshot
}

func newComplianceCacheStub() *complianceCacheStub {
	return &complianceCacheStub{snapshots: make(map[string]*model.ComplianceSnapshot)}
}

func (s *complianceCacheStub) SetSnapshot(ctx context.Context, snapshot *model.ComplianceSnapshot) error {
	s.snapshots[snapshot.FormID] = snapshot
	return nil
}

func (s *complianceCacheStub) GetSnapshot(ctx context.Context, formID string) (*model.ComplianceSnapshot, error) {
	return s.snapshots[formID], nil
}

func (s *complianceCacheStub) DeleteSnapshot(ctx context.Context, formID string) error {
	delete(s.snapshots, formID)
	return nil
}

func validForm(id, userID string) *model.IntakeForm {
	start := time.Now().AddDate(0, 1, 0)
	end := start.AddDate(0, 3, 0)
	return &model.IntakeForm{
		ID:            id,
		UserID:        userID,
		Background:    "Consulting services for asset tracking",
		CommodityType: "Professional Services",
		StartDate:     &start,
		EndDate:       &end,
		Status:        model.FormInProgress,
		Requirements:  model.Requirements{PriceWeight: 40},
	}
}

func TestValidate(t *testing.T) {
	result := Validate(validForm("f1", "u1"))
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)

	incomplete := validForm("f1", "u1")
	incomplete.Background = ""
	incomplete.CommodityType = ""
	result = Validate(incomplete)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Project background is required")
	assert.Contains(t, result.Errors, "Commodity type is required")
}

func TestValidateDateOrdering(t *testing.T) {
	form := validForm("f1", "u1")
	end := form.StartDate.AddDate(0, 0, -1)
	form.EndDate = &end

	result := Validate(form)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "End date must be after start date")
}

func TestValidatePriceWeightBounds(t *testing.T) {
	form := validForm("f1", "u1")
	form.Requirements.PriceWeight = 140

	result := Validate(form)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Price weight must be between 0 and 100")
}

func TestSubmitMovesFormToSubmitted(t *testing.T) {
	repo := newFormRepoStub(validForm("f1", "u1"))
	svc := NewFormService(repo, newComplianceCacheStub(), newDraftCacheStub())

	form, err := svc.Submit(context.Background(), "u1", "f1")
	require.NoError(t, err)
	assert.Equal(t, model.FormSubmitted, form.Status)
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	incomplete := validForm("f1", "u1")
	incomplete.Background = ""
	repo := newFormRepoStub(incomplete)
	svc := NewFormService(repo, newComplianceCacheStub(), newDraftCacheStub())

	_, err := svc.Submit(context.Background(), "u1", "f1")
	assert.Error(t, err)
	assert.Equal(t, model.FormInProgress, repo.forms["f1"].Status)
}

func TestSubmitRejectsWrongOwner(t *testing.T) {
	repo := newFormRepoStub(validForm("f1", "u1"))
	svc := NewFormService(repo, newComplianceCacheStub(), newDraftCacheStub())

	_, err := svc.Submit(context.Background(), "intruder", "f1")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestSubmitRejectsResubmission(t *testing.T) {
	form := validForm("f1", "u1")
	form.Status = model.FormApproved
	repo := newFormRepoStub(form)
	svc := NewFormService(repo, newComplianceCacheStub(), newDraftCacheStub())

	_, err := svc.Submit(context.Background(), "u1", "f1")
	assert.Error(t, err)
}

func TestSaveInvalidatesComplianceSnapshot(t *testing.T) {
	repo := newFormRepoStub(validForm("f1", "u1"))
	cacheStub := newComplianceCacheStub()
	cacheStub.snapshots["f1"] = &model.ComplianceSnapshot{FormID: "f1"}
	svc := NewFormService(repo, cacheStub, newDraftCacheStub())

	updated := validForm("f1", "u1")
	updated.Background = "Revised scope"
	_, err := svc.Save(context.Background(), "u1", updated)

	require.NoError(t, err)
	assert.NotContains(t, cacheStub.snapshots, "f1")
}

func TestEvaluateComplianceCachesSnapshot(t *testing.T) {
	repo := newFormRepoStub(validForm("f1", "u1"))
	cacheStub := newComplianceCacheStub()
	svc := NewFormService(repo, cacheStub, newDraftCacheStub())

	snapshot, err := svc.EvaluateCompliance(context.Background(), "u1", "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", snapshot.FormID)
	assert.Contains(t, cacheStub.snapshots, "f1")

	// Second call serves the cached snapshot.
	again, err := svc.EvaluateCompliance(context.Background(), "u1", "f1")
	require.NoError(t, err)
	assert.Equal(t, snapshot.EvaluatedAt, again.EvaluatedAt)
}

func TestCreateDerivesTitle(t *testing.T) {
	repo := newFormRepoStub()
	svc := NewFormService(repo, newComplianceCacheStub(), newDraftCacheStub())

	form, err := svc.Create(context.Background(), "u1", &model.IntakeForm{Background: "Short background"})
	require.NoError(t, err)
	assert.Equal(t, "Short background", form.Title)
	assert.Equal(t, model.FormDraft, form.Status)

	form, err = svc.Create(context.Background(), "u1", &model.IntakeForm{})
	require.NoError(t, err)
	assert.Equal(t, "New RFx Intake Form", form.Title)
}
