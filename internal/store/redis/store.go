package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPreferenceTTL is the default TTL for visitor preferences (1 year)
	DefaultPreferenceTTL = 365 * 24 * time.Hour
	// DefaultSnapshotTTL is the default TTL for the last-good directory (30 days)
	DefaultSnapshotTTL = 30 * 24 * time.Hour
)

// Store handles Redis operations for counters, preferences and snapshots.
// A nil *Store is valid and behaves as an empty, write-discarding store so
// that linkhub runs without Redis.
type Store struct {
	client        *redis.Client
	preferenceTTL time.Duration
}

// NewStore creates a new Redis store. A nil client yields a nil store.
func NewStore(client *redis.Client, preferenceTTL time.Duration) *Store {
	if client == nil {
		return nil
	}
	if preferenceTTL <= 0 {
		preferenceTTL = DefaultPreferenceTTL
	}
	return &Store{
		client:        client,
		preferenceTTL: preferenceTTL,
	}
}

// Enabled reports whether the store is backed by Redis.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}
