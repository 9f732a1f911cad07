package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/tkadlec/rollcall/internal/web/handlers"
	"github.com/tkadlec/rollcall/internal/web/static"
)

func (s *Server) setupRoutes() {
	// Create handlers
	sessionsHandler := handlers.NewSessionsHandler(s.sessions)
	rosterHandler := handlers.NewRosterHandler(s.config, s.sessions)
	photoHandler := handlers.NewPhotoHandler(s.config, s.sessions)
	regionsHandler := handlers.NewRegionsHandler(s.sessions, s.detector)
	assignHandler := handlers.NewAssignHandler(s.sessions)
	reportHandler := handlers.NewReportHandler(s.config, s.sessions)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck(s.sessions))

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", sessionsHandler.Create)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", sessionsHandler.Get)
			r.Delete("/", sessionsHandler.Delete)

			// Roster
			r.Post("/roster", rosterHandler.Upload)
			r.Get("/roster/search", rosterHandler.Search)

			// Photo
			r.Post("/photo", photoHandler.Upload)
			r.Get("/photo/thumb/{size}", photoHandler.Thumbnail)

			// Regions
			r.Post("/detect", regionsHandler.Detect)
			r.Get("/regions", regionsHandler.List)
			r.Post("/viewport", regionsHandler.SetViewport)
			r.Post("/click", regionsHandler.Click)

			// Assignment
			r.Post("/assign", assignHandler.Assign)
			r.Post("/unassign", assignHandler.Unassign)
			r.Get("/present", assignHandler.Present)

			// Report
			r.Get("/report", reportHandler.Get)
			r.Get("/report.csv", reportHandler.Download)
			r.Post("/report/save", reportHandler.Save)
		})
	})

	// Operator UI
	s.router.Get("/", static.Index)
	s.router.Get("/app.js", static.AppJS)
}
