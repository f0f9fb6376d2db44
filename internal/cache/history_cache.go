package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rfxintake/internal/model"
)

const historyMax = 50

// HistoryCache keeps the recent conversation per form so the upstream
// model gets context without a database round trip.
type HistoryCache interface {
	Append(ctx context.Context, formID string, msg *model.ChatMessage) error
	Recent(ctx context.Context, formID string, limit int) ([]model.ChatMessage, error)
	Clear(ctx context.Context, formID string) error
}

type historyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHistoryCache creates a new chat history cache
func NewHistoryCache(client *redis.Client) HistoryCache {
	return &historyCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *historyCache) key(formID string) string {
	return fmt.Sprintf("form:%s:chat", formID)
}

func (c *historyCache) Append(ctx context.Context, formID string, msg *model.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := c.key(formID)
	pipe := c.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -historyMax, -1)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *historyCache) Recent(ctx context.Context, formID string, limit int) ([]model.ChatMessage, error) {
	raw, err := c.client.LRange(ctx, c.key(formID), int64(-limit), -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	messages := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (c *historyCache) Clear(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
