package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency-key checks for the define RPC method,
// backed by Redis. Key format: dedup:define:<collection>:<key>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether a define with this key was already accepted.
func (d *DedupChecker) IsDuplicate(ctx context.Context, collectionName, key string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(collectionName, key)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the key as seen (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, collectionName, key string) error {
	return d.client.Set(ctx, d.key(collectionName, key), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(collectionName, key string) string {
	return fmt.Sprintf("dedup:define:%s:%s", collectionName, key)
}
