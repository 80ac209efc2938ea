package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkhub/internal/directory"
	"github.com/MrSnakeDoc/linkhub/internal/index"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
	"github.com/MrSnakeDoc/linkhub/internal/sources/links"
	redisstore "github.com/MrSnakeDoc/linkhub/internal/store/redis"
)

// DirectoryReloader loads the directory file into the memory index on start,
// on a ticker, on manual trigger and, when watching, on file changes.
type DirectoryReloader struct {
	loader        *links.Loader
	mapper        *links.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	watchDebounce time.Duration // 0 disables the file watch
	stopCh        chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
	manualTrigger chan struct{}
}

// NewDirectoryReloader creates a new directory reloader.
// An empty directoryFile serves the builtin directory and is never watched.
func NewDirectoryReloader(
	directoryFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	watchDebounce time.Duration,
	manualTrigger chan struct{},
) *DirectoryReloader {
	if directoryFile == "" {
		watchDebounce = 0
	}
	return &DirectoryReloader{
		loader:        links.NewLoader(directoryFile),
		mapper:        links.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log.With(logger.String("component", "directory_reloader")),
		interval:      interval,
		watchDebounce: watchDebounce,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the directory and begins the background reload loop.
// If the first load fails, the last-good snapshot from Redis is served
// instead; Start fails only when neither is available.
func (dr *DirectoryReloader) Start(ctx context.Context) error {
	if err := dr.Reload(ctx); err != nil {
		dr.logger.Error("initial directory load failed, trying last-good snapshot",
			logger.String("source", dr.loader.Path()),
			logger.Error(err))
		if restoreErr := dr.restoreSnapshot(ctx); restoreErr != nil {
			return fmt.Errorf("initial reload failed: %w", errors.Join(err, restoreErr))
		}
	}

	var watcher *fileWatcher
	if dr.watchDebounce > 0 {
		w, err := newFileWatcher(dr.loader.Path())
		if err != nil {
			dr.logger.Warn("directory file watch disabled",
				logger.String("file", dr.loader.Path()),
				logger.Error(err))
		} else {
			watcher = w
			dr.logger.Info("watching directory file",
				logger.String("file", dr.loader.Path()),
				logger.Duration("debounce", dr.watchDebounce))
		}
	}

	dr.wg.Add(1)
	go dr.loop(ctx, watcher)

	return nil
}

func (dr *DirectoryReloader) loop(ctx context.Context, watcher *fileWatcher) {
	defer dr.wg.Done()

	ticker := time.NewTicker(dr.interval)
	defer ticker.Stop()

	var changes <-chan struct{}
	if watcher != nil {
		defer watcher.Close()
		changes = watcher.Changes(dr.watchDebounce, dr.logger)
	}

	for {
		select {
		case <-ticker.C:
			dr.reloadAndLog(ctx, "interval")
		case <-dr.manualTrigger:
			dr.logger.Info("manual directory reload triggered")
			dr.reloadAndLog(ctx, "manual")
		case <-changes:
			dr.reloadAndLog(ctx, "file change")
		case <-dr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (dr *DirectoryReloader) reloadAndLog(ctx context.Context, reason string) {
	if err := dr.Reload(ctx); err != nil {
		// The previous snapshot keeps being served.
		dr.logger.Error("failed to reload directory",
			logger.String("reason", reason),
			logger.Error(err))
	}
}

// Stop stops the reloader and waits for its goroutines.
func (dr *DirectoryReloader) Stop() {
	dr.stopOnce.Do(func() { close(dr.stopCh) })
	dr.wg.Wait()
}

// Reload loads the directory file and swaps it into the index.
// An unchanged directory is not swapped.
func (dr *DirectoryReloader) Reload(ctx context.Context) error {
	dr.logger.Debug("reloading directory", logger.String("source", dr.loader.Path()))

	cfg, err := dr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load directory: %w", err)
	}

	newLinks, skipped, err := dr.mapper.MapLinks(cfg)
	for _, s := range skipped {
		dr.logger.Warn("skipping invalid directory entry", logger.Error(s))
	}
	if err != nil {
		return fmt.Errorf("failed to map directory: %w", err)
	}

	dir, err := directory.New(newLinks)
	if err != nil {
		return fmt.Errorf("failed to build directory: %w", err)
	}

	if current := dr.index.Directory(); current != nil && current.Version() == dir.Version() {
		dr.logger.Debug("directory unchanged", logger.String("version", dir.Version()))
		return nil
	}

	dr.index.Update(dir, dr.loader.Path())
	dr.logger.Info("loaded directory",
		logger.String("source", dr.loader.Path()),
		logger.Int("links", dir.Len()),
		logger.Int("categories", len(dir.Categories())-1),
		logger.String("version", dir.Version()))

	// Keep a last-good copy in Redis (best effort)
	if dr.store.Enabled() {
		err := dr.store.SaveSnapshot(ctx, redisstore.Snapshot{
			Version: dir.Version(),
			Source:  dr.loader.Path(),
			SavedAt: time.Now(),
			Links:   dir.All(),
		})
		if err != nil {
			dr.logger.Warn("failed to save directory snapshot to redis",
				logger.Error(err))
		}
	}

	return nil
}

// restoreSnapshot serves the last-good directory saved in Redis.
func (dr *DirectoryReloader) restoreSnapshot(ctx context.Context) error {
	snap, err := dr.store.GetSnapshot(ctx)
	if err != nil {
		return err
	}

	dir, err := directory.New(snap.Links)
	if err != nil {
		return fmt.Errorf("invalid directory snapshot: %w", err)
	}

	dr.index.Update(dir, "redis:"+snap.Source)
	dr.logger.Warn("serving last-good directory snapshot from redis",
		logger.String("source", snap.Source),
		logger.String("saved_at", snap.SavedAt.Format(time.RFC3339)),
		logger.Int("links", dir.Len()))
	return nil
}
