package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

// ErrNoSnapshot is returned when Redis holds no directory snapshot.
var ErrNoSnapshot = errors.New("no directory snapshot")

// Snapshot is the persisted form of a directory that loaded successfully.
type Snapshot struct {
	Version string        `json:"version"`
	Source  string        `json:"source"`
	SavedAt time.Time     `json:"saved_at"`
	Links   []domain.Link `json:"links"`
}

// SaveSnapshot stores the last-good directory
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	if !s.Enabled() {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, KeySnapshot, data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the last-good directory
func (s *Store) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	if !s.Enabled() {
		return nil, ErrNoSnapshot
	}
	data, err := s.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
