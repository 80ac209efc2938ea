package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkhub/internal/index"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
)

const errDirectoryNotLoaded = "directory not loaded"

// linkView is a link decorated for display.
type linkView struct {
	domain.Link
	TitleSegments       []domain.Segment `json:"title_segments"`
	DescriptionSegments []domain.Segment `json:"description_segments"`
	Hashtags            []string         `json:"hashtags"`
	Visits              int64            `json:"visits"`
}

type linksResponse struct {
	Query    string     `json:"query"`
	Category string     `json:"category"`
	Count    int        `json:"count"`
	Version  string     `json:"version"`
	Links    []linkView `json:"links"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

func newLinkView(l domain.Link, query string, hashtags int, idx *index.MemoryIndex) linkView {
	return linkView{
		Link:                l,
		TitleSegments:       domain.Highlight(l.Title, query),
		DescriptionSegments: domain.Highlight(l.Description, query),
		Hashtags:            domain.Hashtags(l.Keywords, hashtags),
		Visits:              idx.Counter(l.ID),
	}
}

// etag is weak: visit counts may move without the directory changing.
func etag(version string) string {
	return `W/"` + version + `"`
}

func notModified(r *http.Request, tag string) bool {
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		if strings.TrimSpace(candidate) == tag {
			return true
		}
	}
	return false
}

// Links filters the directory by ?q= and ?category= (default All).
func Links(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.MemoryIndex.Directory()
		if dir == nil {
			writeError(w, http.StatusServiceUnavailable, errDirectoryNotLoaded)
			return
		}

		query := r.URL.Query().Get("q")
		category := r.URL.Query().Get("category")
		if category == "" {
			category = domain.CategoryAll
		}

		tag := etag(dir.Version())
		w.Header().Set("ETag", tag)
		if notModified(r, tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		matches := dir.Filter(query, category)
		views := make([]linkView, 0, len(matches))
		for _, l := range matches {
			views = append(views, newLinkView(l, query, d.HashtagCount, d.MemoryIndex))
		}

		d.Logger.Debug("links request",
			logger.String("query", query),
			logger.String("category", category),
			logger.Int("count", len(views)))

		writeJSON(w, http.StatusOK, linksResponse{
			Query:    query,
			Category: category,
			Count:    len(views),
			Version:  dir.Version(),
			Links:    views,
		})
	}
}

// Link returns a single link by id.
func Link(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.MemoryIndex.Directory()
		if dir == nil {
			writeError(w, http.StatusServiceUnavailable, errDirectoryNotLoaded)
			return
		}

		l, ok := dir.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}

		w.Header().Set("ETag", etag(dir.Version()))
		writeJSON(w, http.StatusOK, newLinkView(l, "", d.HashtagCount, d.MemoryIndex))
	}
}

// Categories lists "All" followed by the directory's categories.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := d.MemoryIndex.Directory()
		if dir == nil {
			writeError(w, http.StatusServiceUnavailable, errDirectoryNotLoaded)
			return
		}

		tag := etag(dir.Version())
		w.Header().Set("ETag", tag)
		if notModified(r, tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		writeJSON(w, http.StatusOK, categoriesResponse{Categories: dir.Categories()})
	}
}
