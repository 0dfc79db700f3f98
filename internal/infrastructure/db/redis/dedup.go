package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// dedupTTL bounds how long an event fingerprint is remembered. Couriers and
// partner webhooks retry within minutes; an hour covers every retry policy
// seen in production.
const dedupTTL = time.Hour

// DedupChecker remembers processed event fingerprints in Redis so retried
// deliveries of the same event are dropped.
//
// Fingerprint: dedup:<tracking_number>:<status>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether an event with this exact fingerprint has
// already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, trackingNumber, status string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(trackingNumber, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the event fingerprint. SETNX keeps the original TTL when two
// workers race on the same fingerprint.
func (d *DedupChecker) Mark(ctx context.Context, trackingNumber, status string, ts time.Time) error {
	return d.client.SetNX(ctx, dedupKey(trackingNumber, status, ts), "1", dedupTTL).Err()
}

func dedupKey(trackingNumber, status string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", trackingNumber, status, ts.Unix())
}
