package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rfxintake/internal/model"
)

// DraftCache holds autosaved form drafts between explicit saves, so a
// browser crash mid-edit loses at most one autosave window.
type DraftCache interface {
	SetDraft(ctx context.Context, userID string, form *model.IntakeForm) error
	GetDraft(ctx context.Context, userID string) (*model.IntakeForm, error)
	DeleteDraft(ctx context.Context, userID string) error
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a new draft cache
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *draftCache) key(userID string) string {
	return fmt.Sprintf("user:%s:draft", userID)
}

func (c *draftCache) SetDraft(ctx context.Context, userID string, form *model.IntakeForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *draftCache) GetDraft(ctx context.Context, userID string) (*model.IntakeForm, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var form model.IntakeForm
	if err := json.Unmarshal([]byte(data), &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *draftCache) DeleteDraft(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
