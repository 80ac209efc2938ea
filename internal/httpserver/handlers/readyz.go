package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
	Links int  `json:"links"`
}

// Readyz reports ready once a directory snapshot is being served.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if d.MemoryIndex.Directory() == nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{
			Ready: true,
			Links: d.MemoryIndex.Count(),
		})
	}
}
