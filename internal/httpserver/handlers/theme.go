package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkhub/internal/logger"
	redisstore "github.com/MrSnakeDoc/linkhub/internal/store/redis"
)

const (
	VisitorCookie = "linkhub_visitor"
	ThemeCookie   = "linkhub_theme"

	maxThemeBody = 1 << 10
)

type themeResponse struct {
	Theme domain.Theme `json:"theme"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// GetTheme returns the visitor's theme, issuing a visitor id if needed.
func GetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := visitorID(w, r, d.PreferenceTTL)
		writeJSON(w, http.StatusOK, themeResponse{Theme: currentTheme(r, d, visitor)})
	}
}

// SetTheme stores {"theme":"light"|"dark"} for the visitor.
func SetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := visitorID(w, r, d.PreferenceTTL)

		var req themeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxThemeBody)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		theme, err := domain.ParseTheme(req.Theme)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		saveTheme(w, r, d, visitor, theme)
		writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
	}
}

// ToggleTheme flips the visitor's theme and returns the new one.
func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := visitorID(w, r, d.PreferenceTTL)

		theme := currentTheme(r, d, visitor).Toggle()
		saveTheme(w, r, d, visitor, theme)
		writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
	}
}

// ResetTheme forgets the visitor's stored theme and returns the default
// picked from the client hint.
func ResetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := visitorID(w, r, d.PreferenceTTL)

		if err := d.Store.DeleteTheme(r.Context(), visitor); err != nil {
			d.Logger.Warn("failed to delete theme preference", logger.Error(err))
		}
		expired := newCookie(r, ThemeCookie, "", d.PreferenceTTL)
		expired.MaxAge = -1
		http.SetCookie(w, expired)

		writeJSON(w, http.StatusOK, themeResponse{
			Theme: domain.DefaultTheme(r.Header.Get("Sec-CH-Prefers-Color-Scheme")),
		})
	}
}

// visitorID returns the visitor id from its cookie, issuing a new one when
// the cookie is missing or malformed.
func visitorID(w http.ResponseWriter, r *http.Request, ttl time.Duration) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, newCookie(r, VisitorCookie, id, ttl))
	return id
}

// currentTheme resolves the theme from Redis, then the theme cookie, then the
// Sec-CH-Prefers-Color-Scheme client hint.
func currentTheme(r *http.Request, d deps.Deps, visitor string) domain.Theme {
	theme, err := d.Store.GetTheme(r.Context(), visitor)
	if err == nil {
		return theme
	}
	if !errors.Is(err, redisstore.ErrNoPreference) {
		d.Logger.Warn("failed to read theme preference", logger.Error(err))
	}

	if c, err := r.Cookie(ThemeCookie); err == nil {
		if theme, err := domain.ParseTheme(c.Value); err == nil {
			return theme
		}
	}

	return domain.DefaultTheme(r.Header.Get("Sec-CH-Prefers-Color-Scheme"))
}

func saveTheme(w http.ResponseWriter, r *http.Request, d deps.Deps, visitor string, theme domain.Theme) {
	http.SetCookie(w, newCookie(r, ThemeCookie, string(theme), d.PreferenceTTL))

	// Cookie already holds it, Redis is best effort
	if err := d.Store.SaveTheme(r.Context(), visitor, theme); err != nil {
		d.Logger.Warn("failed to save theme preference", logger.Error(err))
	}
}

func newCookie(r *http.Request, name, value string, ttl time.Duration) *http.Cookie {
	if ttl <= 0 {
		ttl = redisstore.DefaultPreferenceTTL
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}
