package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rfxintake/internal/model"
)

// ComplianceCache handles Redis operations for cached compliance
// snapshots. The engine itself never persists anything; the snapshot
// here just spares re-evaluation between form edits.
type ComplianceCache interface {
	SetSnapshot(ctx context.Context, snapshot *model.ComplianceSnapshot) error
	GetSnapshot(ctx context.Context, formID string) (*model.ComplianceSnapshot, error)
	DeleteSnapshot(ctx context.Context, formID string) error
}

type complianceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewComplianceCache creates a new compliance snapshot cache
func NewComplianceCache(client *redis.Client) ComplianceCache {
	return &complianceCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *complianceCache) key(formID string) string {
	return fmt.Sprintf("form:%s:compliance", formID)
}

func (c *complianceCache) SetSnapshot(ctx context.Context, snapshot *model.ComplianceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(snapshot.FormID), data, c.ttl).Err()
}

func (c *complianceCache) GetSnapshot(ctx context.Context, formID string) (*model.ComplianceSnapshot, error) {
	data, err := c.client.Get(ctx, c.key(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot model.ComplianceSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *complianceCache) DeleteSnapshot(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
