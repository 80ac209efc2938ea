package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/linkhub/internal/index"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
	redisstore "github.com/MrSnakeDoc/linkhub/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string           // Host headers allowed to access ops endpoints
	AllowedCIDRS  []string           // IPs allowed to access healthz/readyz/infra/reload
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	DirectoryFile string             // Path to the directory file (empty = builtin)
	RedisClient   *redis.Client      // Redis client connection (nil when Redis is disabled)
	Store         *redisstore.Store  // Counters, preferences and snapshots (nil-safe)
	MemoryIndex   *index.MemoryIndex // Directory snapshot being served
	HashtagCount  int                // Keywords shown as hashtags per link
	PreferenceTTL time.Duration      // Lifetime of the visitor and theme cookies
	RateBurst     int                // API requests allowed in a burst per client IP
	RatePerMin    int                // API requests refilled per minute per client IP
	ReloadTrigger chan struct{}      // Channel to trigger manual directory reload
}
