// Package suggestion governs how an extracted suggestion moves from
// proposal to confirmed form content.
package suggestion

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"rfxintake/internal/extract"
	"rfxintake/internal/model"
)

// ErrInvalidTransition is returned when transitioning a suggestion
// that already left the pending state.
var ErrInvalidTransition = errors.New("suggestion is no longer pending")

// Transition moves a pending suggestion to accepted, rejected or
// modified. Accepting with edited content is valid and distinct from
// the modified status; the edits are stored either way. The input is
// not mutated.
func Transition(s model.Suggestion, target model.SuggestionStatus, editedContent json.RawMessage) (model.Suggestion, error) {
	if s.Status != model.SuggestionPending {
		return model.Suggestion{}, ErrInvalidTransition
	}
	switch target {
	case model.SuggestionAccepted, model.SuggestionRejected, model.SuggestionModified:
	default:
		return model.Suggestion{}, ErrInvalidTransition
	}

	now := time.Now()
	s.Status = target
	s.UpdatedAt = now
	if target == model.SuggestionAccepted {
		s.AcceptedAt = &now
	}
	if len(editedContent) > 0 {
		s.ModifiedContent = editedContent
	}
	return s, nil
}

// Merge appends an accepted item to the form section it targets,
// returning a new snapshot. An item whose name already exists in the
// section (case-insensitive) is silently skipped, so accepting the
// same content twice leaves the form unchanged.
func Merge(form model.IntakeForm, item model.CandidateItem, section model.SectionType) model.IntakeForm {
	switch section {
	case model.SectionDeliverables:
		if hasDeliverable(form.Deliverables, item.Name) {
			return form
		}
		form.Deliverables = append(cloneDeliverables(form.Deliverables), model.Deliverable{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Selected:    false,
		})

	case model.SectionMandatoryCriteria:
		if hasRequirement(form.Requirements.Mandatory, item.Name) {
			return form
		}
		form.Requirements.Mandatory = append(cloneRequirements(form.Requirements.Mandatory), model.Requirement{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Type:        "mandatory",
		})

	case model.SectionRatedCriteria:
		if hasRequirement(form.Requirements.Rated, item.Name) {
			return form
		}
		scale := item.Scale
		if scale == "" {
			scale = extract.ScaleChat
		}
		form.Requirements.Rated = append(cloneRequirements(form.Requirements.Rated), model.Requirement{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Type:        "rated",
			Weight:      item.Weight,
			Scale:       scale,
		})

	case model.SectionBudget:
		if form.EstimatedValue == 0 && item.SuggestedRange != nil {
			form.EstimatedValue = item.SuggestedRange.Max
		}

	case model.SectionTimeline:
		// Timeline hints carry a duration string, not dates; they
		// inform the user but don't alter the snapshot.
	}

	return form
}

func hasDeliverable(deliverables []model.Deliverable, name string) bool {
	for _, d := range deliverables {
		if strings.EqualFold(strings.TrimSpace(d.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func hasRequirement(requirements []model.Requirement, name string) bool {
	for _, r := range requirements {
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func cloneDeliverables(in []model.Deliverable) []model.Deliverable {
	out := make([]model.Deliverable, len(in))
	copy(out, in)
	return out
}

func cloneRequirements(in []model.Requirement) []model.Requirement {
	out := make([]model.Requirement, len(in))
	copy(out, in)
	return out
}
