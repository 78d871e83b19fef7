// Package router sets up all HTTP routes and middleware chains for the
// FutureShot service: the upload UI, the session API, and the public
// share viewer.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"futureshot/internal/handlers"
	"futureshot/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionAPI *handlers.SessionAPI, share *handlers.Share) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	// Session API — one endpoint per state machine operation.
	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", handlers.Themes)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionAPI.Get)
			r.Post("/theme", sessionAPI.SelectTheme)
			r.Post("/source", sessionAPI.SetSource)
			r.Post("/submit", sessionAPI.Submit)
			r.Post("/retry", sessionAPI.Retry)
			r.Post("/share", sessionAPI.Share)
		})

		// Direct share creation, for clients that keep their own state.
		r.Post("/share", share.Create)
	})

	// Public share viewer — the link and QR code resolve here.
	r.Route("/share/{id}", func(r chi.Router) {
		r.Get("/", share.View)
		r.Get("/qr", share.QR)
	})

	// Upload UI.
	r.Get("/", handlers.Home)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
