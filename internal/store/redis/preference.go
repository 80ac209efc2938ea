package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

// ErrNoPreference is returned when a visitor has no stored theme.
var ErrNoPreference = errors.New("no stored preference")

// GetTheme retrieves a visitor's theme preference
func (s *Store) GetTheme(ctx context.Context, visitorID string) (domain.Theme, error) {
	if !s.Enabled() {
		return "", ErrNoPreference
	}
	v, err := s.client.Get(ctx, ThemeKey(visitorID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoPreference
		}
		return "", fmt.Errorf("failed to get theme: %w", err)
	}

	theme, err := domain.ParseTheme(v)
	if err != nil {
		// A corrupted value is treated as no preference
		return "", ErrNoPreference
	}
	return theme, nil
}

// SaveTheme stores a visitor's theme preference and refreshes its TTL
func (s *Store) SaveTheme(ctx context.Context, visitorID string, theme domain.Theme) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.client.Set(ctx, ThemeKey(visitorID), string(theme), s.preferenceTTL).Err(); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// DeleteTheme removes a visitor's theme preference
func (s *Store) DeleteTheme(ctx context.Context, visitorID string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.client.Del(ctx, ThemeKey(visitorID)).Err(); err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}
	return nil
}
