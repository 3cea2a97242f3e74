package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DedupStore reserves a dispatch key so an overlapping or host-retried run
// cannot double-send the same reminder. A nil store disables deduplication.
type DedupStore interface {
	// Reserve atomically claims key. It returns false when the key was
	// already claimed by an earlier run.
	Reserve(ctx context.Context, key string) (bool, error)
}

// RedisDedupStore implements DedupStore with SETNX and a TTL comfortably
// longer than one day so markers expire on their own.
type RedisDedupStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisDedupStore creates a dedup store with the default 48h marker TTL.
func NewRedisDedupStore(client *redis.Client) *RedisDedupStore {
	return &RedisDedupStore{Client: client, TTL: 48 * time.Hour}
}

func (s *RedisDedupStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, key, 1, s.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedup reserve %s: %w", key, err)
	}
	return ok, nil
}

// dispatchKey identifies one reminder: class, recipient, item, and the
// offset-local calendar day it was matched for.
func dispatchKey(class, userID, itemID string, day time.Time) string {
	return fmt.Sprintf("dispatch:%s:%s:%s:%s", class, userID, itemID, day.Format("2006-01-02"))
}
