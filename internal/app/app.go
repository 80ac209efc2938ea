package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/linkhub/internal/config"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkhub/internal/index"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
	"github.com/MrSnakeDoc/linkhub/internal/redis"
	"github.com/MrSnakeDoc/linkhub/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/linkhub/internal/store/redis"
	"github.com/MrSnakeDoc/linkhub/internal/utils"
	"github.com/MrSnakeDoc/linkhub/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *redisstore.Store
	memIndex    *index.MemoryIndex
	reloader    *scheduler.DirectoryReloader
}

// New wires the service from the environment configuration.
// Redis is optional: when it is not configured or unreachable, visit
// counters and theme preferences live in memory and cookies only.
func New(ctx context.Context) *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	redisClient := connectRedis(ctx, cfg, loggerClient)

	// Initialize memory index
	memIndex := index.NewMemoryIndex()

	// Initialize Redis store (nil when Redis is disabled)
	store := redisstore.NewStore(redisClient, cfg.PreferenceTTL)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	var watchDebounce time.Duration
	if cfg.WatchDirectory {
		watchDebounce = cfg.WatchDebounce
	}

	reloader := scheduler.NewDirectoryReloader(
		cfg.DirectoryFile,
		store,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		watchDebounce,
		reloadTrigger,
	)

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		DirectoryFile: cfg.DirectoryFile,
		RedisClient:   redisClient,
		Store:         store,
		MemoryIndex:   memIndex,
		HashtagCount:  cfg.HashtagCount,
		PreferenceTTL: cfg.PreferenceTTL,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       store,
		memIndex:    memIndex,
		reloader:    reloader,
	}
}

func connectRedis(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) *goredis.Client {
	if !cfg.RedisEnabled() {
		loggerClient.Info("redis not configured, visits and preferences stay in memory")
		return nil
	}

	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.Connect(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Error("redis unavailable, running degraded",
			logger.String("addr", cfg.RedisAddr),
			logger.Error(err))
		return nil
	}

	loggerClient.Info("Redis initialized successfully")
	return client
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM is received.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting linkhub %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		if a.redisClient != nil {
			utils.CloseLogged(a.redisClient, a.logger, "redis")
		}
	}()

	// Restore visit counters before serving
	syncer := scheduler.NewUsageSyncer(a.store, a.memIndex, a.logger)
	if err := syncer.Sync(ctx); err != nil {
		a.logger.Warn("failed to sync visit counters from redis, starting from zero",
			logger.Error(err))
	}

	// Load the directory and start periodic/manual/watched reloads
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start directory reloader: %w", err)
	}
	a.logger.Info("directory reloader started",
		logger.String("source", a.memIndex.Source()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ Shutting down gracefully...")

		a.reloader.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("✅ linkhub stopped cleanly")
	return nil
}
