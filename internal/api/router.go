package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/caresoft/vave-engine/internal/api/handlers"
	mw "github.com/caresoft/vave-engine/internal/api/middleware"
)

type Dependencies struct {
	NodesHandler     *handlers.NodesHandler
	ProjectsHandler  *handlers.ProjectsHandler
	MaterialsHandler *handlers.MaterialsHandler
	ExportHandler    *handlers.ExportHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/tree", dep.NodesHandler.GetTree)

		api.Route("/node", func(nr chi.Router) {
			nr.Post("/add", dep.NodesHandler.Add)
			nr.Post("/update", dep.NodesHandler.Update)
			nr.Post("/delete", dep.NodesHandler.Delete)
		})

		api.Route("/project", func(pr chi.Router) {
			pr.Post("/new", dep.ProjectsHandler.Create)
			pr.Post("/select", dep.ProjectsHandler.Select)
			pr.Post("/complete", dep.ProjectsHandler.Complete)
			pr.Post("/delete", dep.ProjectsHandler.Delete)
		})
		api.Get("/projects", dep.ProjectsHandler.List)

		api.Get("/materials", dep.MaterialsHandler.List)
		api.Post("/materials/update", dep.MaterialsHandler.Update)

		api.Get("/export/bom", dep.ExportHandler.BOM)
	})

	return r
}
