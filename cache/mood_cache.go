package cache

import (
	"context"
	"encoding/json"
	"time"

	"MoodSync/model"

	"github.com/redis/go-redis/v9"
)

const (
	moodCountsKey = "moodsync:moods"
	moodCountsTTL = 5 * time.Minute
)

// MoodCache keeps the mood aggregation (distinct moods with song counts) in
// Redis. It degrades to a pass-through when constructed without a client,
// and every write to the mood mappings invalidates it.
type MoodCache struct {
	client *redis.Client
}

// NewMoodCache creates a mood aggregation cache. A nil client is allowed and
// turns every lookup into a miss.
func NewMoodCache(client *redis.Client) *MoodCache {
	return &MoodCache{client: client}
}

// Get returns the cached aggregation if present.
func (c *MoodCache) Get(ctx context.Context) ([]model.MoodCount, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, moodCountsKey).Bytes()
	if err != nil {
		// redis.Nil and transport errors are both a miss
		return nil, false
	}

	var counts []model.MoodCount
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, false
	}
	return counts, true
}

// Set stores the aggregation with a short TTL.
func (c *MoodCache) Set(ctx context.Context, counts []model.MoodCount) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, moodCountsKey, raw, moodCountsTTL).Err()
}

// Invalidate drops the cached aggregation.
func (c *MoodCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, moodCountsKey).Err()
}
