package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samudra-paket/tracking-service/internal/core/service"
)

const defaultCacheTTL = 2 * time.Minute

// TimelineCache stores projected timelines as JSON blobs.
// Key format: timeline:<tracking_number>
//
// Entries carry the owning client_id so the service can enforce ownership on
// hits. Writes use a short TTL; event processing additionally invalidates the
// key explicitly, so the TTL only bounds staleness when invalidation fails.
type TimelineCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTimelineCache creates a TimelineCache. A non-positive ttl falls back to
// the default.
func NewTimelineCache(client *redis.Client, ttl time.Duration) *TimelineCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &TimelineCache{client: client, ttl: ttl}
}

// Get returns the cached timeline, or nil on a miss.
func (c *TimelineCache) Get(ctx context.Context, trackingNumber string) (*service.CachedTimeline, error) {
	raw, err := c.client.Get(ctx, c.key(trackingNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("timeline cache get: %w", err)
	}

	var cached service.CachedTimeline
	if err := json.Unmarshal(raw, &cached); err != nil {
		// Corrupt entry: treat as a miss so the caller recomputes and overwrites.
		return nil, nil
	}
	return &cached, nil
}

// Set stores the timeline with the configured TTL.
func (c *TimelineCache) Set(ctx context.Context, trackingNumber string, t *service.CachedTimeline) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("timeline cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(trackingNumber), raw, c.ttl).Err()
}

// Invalidate drops the cached timeline for a shipment.
func (c *TimelineCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return c.client.Del(ctx, c.key(trackingNumber)).Err()
}

func (c *TimelineCache) key(trackingNumber string) string {
	return "timeline:" + trackingNumber
}
