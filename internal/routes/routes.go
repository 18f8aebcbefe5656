package routes

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"modual-backend/internal/handler"
	"modual-backend/internal/middleware"
)

// Handlers bündelt die Handler aller Bereiche.
type Handlers struct {
	Installers *handler.InstallerHandler
	Products   *handler.ProductHandler
	Docs       *handler.DocsHandler
}

// Setup registriert globale Middleware und alle Endpunkte am Router.
func Setup(r chi.Router, h Handlers, logger *zap.Logger, rps float64) {
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.RateLimit(rps, logger))

	r.Route("/installateure", func(r chi.Router) {
		r.Get("/", h.Installers.Filter)
		r.Get("/{id}", h.Installers.GetByID)
	})

	r.Route("/produkte", func(r chi.Router) {
		r.Get("/", h.Products.List)
		r.Get("/auswahl", h.Products.Page)
		r.Delete("/cache", h.Products.ClearCache)
	})

	r.Route("/docs", func(r chi.Router) {
		r.Get("/", h.Docs.Overview)
		r.Get("/suche", h.Docs.Search)
		r.Delete("/cache", h.Docs.ClearCache)
		r.Route("/artikel/{id}", func(r chi.Router) {
			r.Get("/", h.Docs.Article)
			r.Get("/llm", h.Docs.LLM)
			r.Get("/pdf", h.Docs.PDF)
		})
	})

	r.Get("/energiefluss", handler.Energy)
}
