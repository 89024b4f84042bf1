// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. Reads on posts and categories are public; every mutation
// sits behind token authentication.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/auth"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *auth.Tokens, authH *handlers.Auth, posts *handlers.Posts, categories *handlers.Categories) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Get("/me", authH.Me)
				r.Put("/profile", authH.UpdateProfile)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/{id}", posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
				r.Post("/{id}/comments", posts.AddComment)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Get("/{id}", categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Post("/", categories.Create)
				r.Put("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
