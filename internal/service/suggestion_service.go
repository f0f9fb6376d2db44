package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rfxintake/internal/cache"
	"rfxintake/internal/extract"
	"rfxintake/internal/model"
	"rfxintake/internal/repository"
	"rfxintake/internal/suggestion"
)

var ErrSuggestionNotFound = errors.New("suggestion not found")

// SuggestionService stores extracted candidate items as reviewable
// suggestions and applies the accepted ones to the form.
type SuggestionService struct {
	suggestionRepo  repository.SuggestionRepo
	formRepo        repository.FormRepo
	criteriaRepo    repository.CriteriaRepo
	complianceCache cache.ComplianceCache
	broadcaster     Broadcaster
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(suggestionRepo repository.SuggestionRepo, formRepo repository.FormRepo, criteriaRepo repository.CriteriaRepo, complianceCache cache.ComplianceCache) *SuggestionService {
	return &SuggestionService{
		suggestionRepo:  suggestionRepo,
		formRepo:        formRepo,
		criteriaRepo:    criteriaRepo,
		complianceCache: complianceCache,
	}
}

// SetBroadcaster sets the WebSocket broadcaster (called after hub initialization)
func (s *SuggestionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ExtractAndStore runs the parser over a chat message and persists
// every extracted item as a pending suggestion, grouped by section.
func (s *SuggestionService) ExtractAndStore(ctx context.Context, formID, userID, messageID, text string, kind model.ItemKind) ([]*model.Suggestion, error) {
	result := extract.ParseWithConfidence(text, kind)
	if len(result.Items) == 0 {
		return nil, nil
	}

	var stored []*model.Suggestion
	for _, item := range result.Items {
		content, err := json.Marshal(item)
		if err != nil {
			return stored, err
		}

		sug := &model.Suggestion{
			FormID:          formID,
			UserID:          userID,
			SectionType:     model.SectionForKind(item.Kind),
			Content:         content,
			ConfidenceScore: result.Confidence,
			SourceMessageID: messageID,
			Status:          model.SuggestionPending,
		}

		id, err := s.suggestionRepo.Create(ctx, sug)
		if err != nil {
			return stored, fmt.Errorf("failed to store suggestion: %w", err)
		}
		sug.ID = id
		stored = append(stored, sug)

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToForm(formID, "suggestion_created", sug)
		}
	}

	return stored, nil
}

// StoreItem persists a single already-extracted item as a pending
// suggestion. Used for items parsed out of structured model replies,
// which follow the numbered-bold format the prompt asks for.
func (s *SuggestionService) StoreItem(ctx context.Context, formID, userID, messageID string, item model.CandidateItem) (*model.Suggestion, error) {
	content, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}

	sug := &model.Suggestion{
		FormID:          formID,
		UserID:          userID,
		SectionType:     model.SectionForKind(item.Kind),
		Content:         content,
		ConfidenceScore: 0.85,
		SourceMessageID: messageID,
		Status:          model.SuggestionPending,
	}

	id, err := s.suggestionRepo.Create(ctx, sug)
	if err != nil {
		return nil, fmt.Errorf("failed to store suggestion: %w", err)
	}
	sug.ID = id

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToForm(formID, "suggestion_created", sug)
	}

	return sug, nil
}

// ListForForm returns a form's suggestions, newest first.
func (s *SuggestionService) ListForForm(ctx context.Context, formID string) ([]*model.Suggestion, error) {
	return s.suggestionRepo.GetByFormID(ctx, formID)
}

// Resolve transitions a pending suggestion. Accepting merges its
// content into the owning form and records the audit trail; rejected
// and modified suggestions only change state.
func (s *SuggestionService) Resolve(ctx context.Context, userID, suggestionID string, target model.SuggestionStatus, editedContent json.RawMessage) (*model.Suggestion, error) {
	sug, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if err != nil {
		return nil, err
	}
	if sug == nil {
		return nil, ErrSuggestionNotFound
	}

	updated, err := suggestion.Transition(*sug, target, editedContent)
	if err != nil {
		return nil, err
	}

	if target == model.SuggestionAccepted {
		if err := s.applyToForm(ctx, userID, &updated); err != nil {
			return nil, err
		}
	}

	if err := s.suggestionRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToForm(updated.FormID, "suggestion_resolved", &updated)
	}

	return &updated, nil
}

// applyToForm merges an accepted suggestion's content into its form
// and writes the audit record for criterion sections. Edited content
// wins over the original extraction.
func (s *SuggestionService) applyToForm(ctx context.Context, userID string, sug *model.Suggestion) error {
	form, err := s.formRepo.GetByID(ctx, sug.FormID)
	if err != nil {
		return err
	}
	if form == nil {
		return ErrFormNotFound
	}

	content := sug.Content
	if len(sug.ModifiedContent) > 0 {
		content = sug.ModifiedContent
	}

	var item model.CandidateItem
	if err := json.Unmarshal(content, &item); err != nil {
		return fmt.Errorf("suggestion content is not a candidate item: %w", err)
	}

	merged := suggestion.Merge(*form, item, sug.SectionType)
	if err := s.formRepo.Update(ctx, &merged); err != nil {
		return err
	}

	// Any accepted content can change the compliance outcome.
	s.complianceCache.DeleteSnapshot(ctx, sug.FormID)

	if sug.SectionType == model.SectionMandatoryCriteria || sug.SectionType == model.SectionRatedCriteria {
		criterion := &model.EvaluationCriterion{
			FormID:       sug.FormID,
			UserID:       userID,
			Type:         criterionType(sug.SectionType),
			Name:         item.Name,
			Description:  item.Description,
			Weight:       item.Weight,
			Source:       "ai_accepted",
			SuggestionID: sug.ID,
		}
		if _, err := s.criteriaRepo.Create(ctx, criterion); err != nil {
			return err
		}
	}

	return nil
}

func criterionType(section model.SectionType) string {
	if section == model.SectionRatedCriteria {
		return "rated"
	}
	return "mandatory"
}
