package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkhub/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkhub/internal/httpserver/handlers"
)

func init() { Register("visit", registerVisit) }

func registerVisit(r chi.Router, d deps.Deps) {
	r.Get("/go/{id}", handlers.Visit(d))
}
