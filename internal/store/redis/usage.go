package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementUsage increments the visit counter for a link
func (s *Store) IncrementUsage(ctx context.Context, linkID string) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	n, err := s.client.HIncrBy(ctx, KeyUsage, linkID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return n, nil
}

// GetUsageStats retrieves visit counters for all links
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	if !s.Enabled() {
		return map[string]int64{}, nil
	}
	raw, err := s.client.HGetAll(ctx, KeyUsage).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for id, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Skip counters that couldn't be parsed
			continue
		}
		stats[id] = n
	}
	return stats, nil
}
