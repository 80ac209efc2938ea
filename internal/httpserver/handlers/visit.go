package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
)

// Visit counts a visit and redirects to the link's portal.
func Visit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.MemoryIndex.Directory()
		if dir == nil {
			writeError(w, http.StatusServiceUnavailable, errDirectoryNotLoaded)
			return
		}

		id := chi.URLParam(r, "id")
		l, ok := dir.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}

		visits := d.MemoryIndex.IncrementCounter(id)

		// Increment persistent counter (best effort)
		if _, err := d.Store.IncrementUsage(r.Context(), id); err != nil {
			d.Logger.Warn("failed to persist visit",
				logger.String("id", id),
				logger.Error(err))
		}

		d.Logger.Info("visit",
			logger.String("id", id),
			logger.String("url", l.URL),
			logger.Int64("visits", visits))

		http.Redirect(w, r, l.URL, http.StatusFound)
	}
}
