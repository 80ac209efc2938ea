package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/linkhub/internal/index"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
	redisstore "github.com/MrSnakeDoc/linkhub/internal/store/redis"
)

// UsageSyncer copies visit counters from Redis to the memory index on startup
type UsageSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewUsageSyncer creates a new usage syncer
func NewUsageSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *UsageSyncer {
	return &UsageSyncer{
		store:  store,
		index:  idx,
		logger: log.With(logger.String("component", "usage_syncer")),
	}
}

// Sync loads visit counters from Redis and merges them into the index
func (us *UsageSyncer) Sync(ctx context.Context) error {
	if !us.store.Enabled() {
		us.logger.Debug("redis disabled, visit counters start at zero")
		return nil
	}

	us.logger.Info("syncing visit counters from redis to memory")

	stats, err := us.store.GetUsageStats(ctx)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		us.logger.Info("no visit counters found in redis")
		return nil
	}

	us.index.SetCounters(stats)

	us.logger.Info("synced visit counters from redis",
		logger.Int("count", len(stats)))

	return nil
}
