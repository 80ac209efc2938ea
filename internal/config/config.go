package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DirectoryFile  string        // path to the links.yaml file (empty = builtin directory)
	ReloadInterval time.Duration // interval to reload the directory file (default: 1h)
	WatchDirectory bool          // reload as soon as the directory file changes
	WatchDebounce  time.Duration // quiet period before a watched change is reloaded
	HashtagCount   int           // keywords surfaced per link (default: 3)

	// Redis (optional, empty address = counters and preferences in memory only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	PreferenceTTL         time.Duration // lifetime of a stored theme preference

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	RateBurst    int      // API requests allowed in a burst per client IP
	RatePerMin   int      // API requests refilled per minute per client IP
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKHUB_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKHUB_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKHUB_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKHUB_PRETTY_LOG", true),

		// Directory
		DirectoryFile:  getenv("LINKHUB_DIRECTORY_FILE", ""),
		ReloadInterval: mustDuration("LINKHUB_RELOAD_INTERVAL", time.Hour),
		WatchDirectory: mustBool("LINKHUB_WATCH_DIRECTORY", true),
		WatchDebounce:  mustDuration("LINKHUB_WATCH_DEBOUNCE", 500*time.Millisecond),
		HashtagCount:   getenvInt("LINKHUB_HASHTAG_COUNT", 3),

		// Redis settings
		RedisAddr:             getenv("LINKHUB_REDIS_ADDR", ""),
		RedisUser:             getenv("LINKHUB_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("LINKHUB_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("LINKHUB_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("LINKHUB_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		PreferenceTTL:         mustDuration("LINKHUB_PREFERENCE_TTL", 365*24*time.Hour),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("LINKHUB_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("LINKHUB_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("LINKHUB_TRUST_PROXY", true),
		RateBurst:    getenvInt("LINKHUB_RATE_BURST", 60),
		RatePerMin:   getenvInt("LINKHUB_RATE_PER_MIN", 120),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: LINKHUB_REDIS_PASSWORD is required when LINKHUB_REDIS_PASSWORD_REQUIRED=true")
	}
	if cfg.ReloadInterval <= 0 {
		panic(fmt.Sprintf("❌ FATAL: LINKHUB_RELOAD_INTERVAL must be > 0, got %v", cfg.ReloadInterval))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cfgCopy := *c
	if cfgCopy.RedisPassword != "" {
		cfgCopy.RedisPassword = "***REDACTED***"
	}
	if cfgCopy.RedisUser != "" {
		cfgCopy.RedisUser = "***REDACTED***"
	}
	return cfgCopy
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
