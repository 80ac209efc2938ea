package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

// registerAPI mounts the public API. All /api routes share one rate limiter.
func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateBurst,
			RefillPerIPPerMin: d.RatePerMin,
			MaxEntries:        10000,
			TrustProxy:        d.TrustProxy,
		}))

		api.Get("/links", handlers.Links(d))
		api.Get("/links/{id}", handlers.Link(d))
		api.Get("/categories", handlers.Categories(d))

		api.Get("/preferences/theme", handlers.GetTheme(d))
		api.Put("/preferences/theme", handlers.SetTheme(d))
		api.Delete("/preferences/theme", handlers.ResetTheme(d))
		api.Post("/preferences/theme/toggle", handlers.ToggleTheme(d))
	})
}
