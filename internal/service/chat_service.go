package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rfxintake/internal/cache"
	"rfxintake/internal/extract"
	"rfxintake/internal/model"
)

const historyTurns = 10

// ChatService orchestrates a scope-chat turn: history retrieval, the
// assistant call, suggestion persistence, and history append.
type ChatService struct {
	assistant    *AssistantService
	forms        *FormService
	suggestions  *SuggestionService
	historyCache cache.HistoryCache
}

// NewChatService creates a new chat service
func NewChatService(assistant *AssistantService, forms *FormService, suggestions *SuggestionService, historyCache cache.HistoryCache) *ChatService {
	return &ChatService{
		assistant:    assistant,
		forms:        forms,
		suggestions:  suggestions,
		historyCache: historyCache,
	}
}

// SendMessage runs one conversation turn against the user's form and
// returns the assistant reply together with any stored suggestions.
func (s *ChatService) SendMessage(ctx context.Context, userID, formID, message string) (*model.AssistantReply, []*model.Suggestion, error) {
	form, err := s.forms.Load(ctx, userID, formID)
	if err != nil {
		return nil, nil, err
	}

	history, err := s.historyCache.Recent(ctx, formID, historyTurns)
	if err != nil {
		history = nil
	}

	userMsg := &model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   message,
		Timestamp: time.Now(),
	}

	reply, err := s.assistant.Chat(ctx, message, form, history)
	if err != nil {
		return nil, nil, err
	}

	// Persist extracted items for review. When the reply carried no
	// structured items, fall back to parsing the user's own message.
	var stored []*model.Suggestion
	if kind, ok := extract.KindForContentType(extract.DetectContentType(message)); ok {
		source := reply.ExtractedItems
		if len(source) == 0 {
			stored, err = s.suggestions.ExtractAndStore(ctx, formID, userID, userMsg.ID, message, kind)
		} else {
			stored, err = s.storeItems(ctx, formID, userID, userMsg.ID, source)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	s.historyCache.Append(ctx, formID, userMsg)
	s.historyCache.Append(ctx, formID, &model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   reply.Response,
		Timestamp: time.Now(),
	})

	return reply, stored, nil
}

// History returns the recent conversation for a form the user owns.
func (s *ChatService) History(ctx context.Context, userID, formID string, limit int) ([]model.ChatMessage, error) {
	if _, err := s.forms.Load(ctx, userID, formID); err != nil {
		return nil, err
	}
	return s.historyCache.Recent(ctx, formID, limit)
}

// ClearHistory wipes a form's conversation.
func (s *ChatService) ClearHistory(ctx context.Context, userID, formID string) error {
	if _, err := s.forms.Load(ctx, userID, formID); err != nil {
		return err
	}
	return s.historyCache.Clear(ctx, formID)
}

// storeItems persists already-extracted items without re-parsing.
func (s *ChatService) storeItems(ctx context.Context, formID, userID, messageID string, items []model.CandidateItem) ([]*model.Suggestion, error) {
	var stored []*model.Suggestion
	for _, item := range items {
		sugs, err := s.suggestions.StoreItem(ctx, formID, userID, messageID, item)
		if err != nil {
			return stored, err
		}
		stored = append(stored, sugs)
	}
	return stored, nil
}
