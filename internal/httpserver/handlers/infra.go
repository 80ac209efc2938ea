package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	LinksLoaded *int   `json:"links_loaded,omitempty"`
	Categories  *int   `json:"categories,omitempty"`
	Version     string `json:"version,omitempty"`
	Source      string `json:"source,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		components := map[string]componentStatus{
			"directory": checkDirectory(d),
			"redis":     checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// No directory = nothing to serve
	if dir, exists := components["directory"]; exists && !dir.OK {
		return "critical"
	}

	// Redis down = counters and preferences are not persisted
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "optimal"
}

func checkDirectory(d deps.Deps) componentStatus {
	dir := d.MemoryIndex.Directory()
	if dir == nil {
		return componentStatus{
			OK:    false,
			Error: errDirectoryNotLoaded,
		}
	}

	links := dir.Len()
	categories := len(dir.Categories()) - 1
	return componentStatus{
		OK:          true,
		LinksLoaded: &links,
		Categories:  &categories,
		Version:     dir.Version(),
		Source:      d.MemoryIndex.Source(),
		LastReload:  d.MemoryIndex.GetLastReload().Format("2006-01-02 15:04:05"),
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "visits-and-preferences-in-memory",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "visits-and-preferences-in-memory",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "persistent",
		Impact: "none",
	}
}
