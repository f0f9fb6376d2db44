package suggestion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfxintake/internal/extract"
	"rfxintake/internal/model"
)

func pendingSuggestion() model.Suggestion {
	return model.Suggestion{
		ID:          "sug-1",
		FormID:      "form-1",
		SectionType: model.SectionDeliverables,
		Content:     json.RawMessage(`{"name":"Final Report"}`),
		Status:      model.SuggestionPending,
	}
}

func TestTransitionAccept(t *testing.T) {
	out, err := Transition(pendingSuggestion(), model.SuggestionAccepted, nil)

	require.NoError(t, err)
	assert.Equal(t, model.SuggestionAccepted, out.Status)
	require.NotNil(t, out.AcceptedAt)
	assert.False(t, out.UpdatedAt.IsZero())
	assert.Nil(t, out.ModifiedContent)
}

func TestTransitionRejectAndModify(t *testing.T) {
	out, err := Transition(pendingSuggestion(), model.SuggestionRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionRejected, out.Status)
	assert.Nil(t, out.AcceptedAt)

	edited := json.RawMessage(`{"name":"Final Report v2"}`)
	out, err = Transition(pendingSuggestion(), model.SuggestionModified, edited)
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionModified, out.Status)
	assert.Equal(t, edited, out.ModifiedContent)
}

func TestTransitionAcceptWithEdits(t *testing.T) {
	edited := json.RawMessage(`{"name":"Tweaked"}`)
	out, err := Transition(pendingSuggestion(), model.SuggestionAccepted, edited)

	require.NoError(t, err)
	assert.Equal(t, model.SuggestionAccepted, out.Status)
	assert.Equal(t, edited, out.ModifiedContent)
}

func TestTransitionRejectsNonPending(t *testing.T) {
	s := pendingSuggestion()
	s.Status = model.SuggestionAccepted

	_, err := Transition(s, model.SuggestionRejected, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionRejectsInvalidTarget(t *testing.T) {
	_, err := Transition(pendingSuggestion(), model.SuggestionPending, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	s := pendingSuggestion()
	_, err := Transition(s, model.SuggestionAccepted, nil)

	require.NoError(t, err)
	assert.Equal(t, model.SuggestionPending, s.Status)
	assert.Nil(t, s.AcceptedAt)
}

func TestMergeDeliverable(t *testing.T) {
	form := model.IntakeForm{}
	item := model.CandidateItem{ID: "d1", Kind: model.KindDeliverable, Name: "Final Report", Description: "Summary"}

	merged := Merge(form, item, model.SectionDeliverables)

	require.Len(t, merged.Deliverables, 1)
	assert.Equal(t, "Final Report", merged.Deliverables[0].Name)
	assert.False(t, merged.Deliverables[0].Selected)
	// Original snapshot untouched.
	assert.Empty(t, form.Deliverables)
}

func TestMergeSkipsDuplicateCaseInsensitive(t *testing.T) {
	form := model.IntakeForm{
		Deliverables: []model.Deliverable{{ID: "existing", Name: "final report"}},
	}
	item := model.CandidateItem{ID: "d2", Kind: model.KindDeliverable, Name: "Final Report"}

	merged := Merge(form, item, model.SectionDeliverables)

	require.Len(t, merged.Deliverables, 1)
	assert.Equal(t, "existing", merged.Deliverables[0].ID)
}

func TestMergeIsIdempotent(t *testing.T) {
	form := model.IntakeForm{}
	item := model.CandidateItem{ID: "d1", Kind: model.KindDeliverable, Name: "Final Report"}

	once := Merge(form, item, model.SectionDeliverables)
	twice := Merge(once, item, model.SectionDeliverables)

	assert.Equal(t, once, twice)
}

func TestMergeRatedDefaultsScale(t *testing.T) {
	form := model.IntakeForm{}
	item := model.CandidateItem{ID: "r1", Kind: model.KindRated, Name: "Approach", Weight: 25}

	merged := Merge(form, item, model.SectionRatedCriteria)

	require.Len(t, merged.Requirements.Rated, 1)
	got := merged.Requirements.Rated[0]
	assert.Equal(t, "rated", got.Type)
	assert.Equal(t, 25, got.Weight)
	assert.Equal(t, extract.ScaleChat, got.Scale)
}

func TestMergeMandatory(t *testing.T) {
	form := model.IntakeForm{}
	item := model.CandidateItem{ID: "m1", Kind: model.KindMandatory, Name: "Insurance", Description: "Valid coverage"}

	merged := Merge(form, item, model.SectionMandatoryCriteria)

	require.Len(t, merged.Requirements.Mandatory, 1)
	assert.Equal(t, "mandatory", merged.Requirements.Mandatory[0].Type)
}

func TestMergeBudgetFillsEmptyValue(t *testing.T) {
	form := model.IntakeForm{}
	item := model.CandidateItem{
		Kind:           model.KindBudget,
		Name:           "$50,000 to $75,000",
		SuggestedRange: &model.BudgetRange{Min: 50000, Max: 75000},
	}

	merged := Merge(form, item, model.SectionBudget)
	assert.Equal(t, 75000.0, merged.EstimatedValue)

	// An already-set value is never overwritten.
	form.EstimatedValue = 30000
	merged = Merge(form, item, model.SectionBudget)
	assert.Equal(t, 30000.0, merged.EstimatedValue)
}

func TestMergeTimelineLeavesFormUnchanged(t *testing.T) {
	form := model.IntakeForm{Title: "Untouched"}
	item := model.CandidateItem{Kind: model.KindTimeline, Name: "12 weeks", SuggestedDuration: "12 weeks"}

	merged := Merge(form, item, model.SectionTimeline)
	assert.Equal(t, form, merged)
}
