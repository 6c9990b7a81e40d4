// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tranquochuy/mangabay/internal/catalog/chapter"
	"github.com/tranquochuy/mangabay/internal/catalog/manga"
	"github.com/tranquochuy/mangabay/internal/library/bookmark"
	"github.com/tranquochuy/mangabay/internal/library/history"
	"github.com/tranquochuy/mangabay/internal/platform/config"
	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/middleware"
	"github.com/tranquochuy/mangabay/internal/social/comment"
	"github.com/tranquochuy/mangabay/internal/users/account"
	"github.com/tranquochuy/mangabay/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here, no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, sessions, and display preferences.
	Auth *auth.Handler

	// Manga handles the public catalog and the admin manga back-office.
	Manga *manga.Handler

	// Chapter handles the reader view and the admin chapter/page back-office.
	Chapter *chapter.Handler

	// Bookmark handles series and page bookmarks.
	Bookmark *bookmark.Handler

	// History handles the reading-history list.
	History *history.Handler

	// Comment handles chapter discussion threads and moderation.
	Comment *comment.Handler

	// Account handles the member profile, dashboard, and admin user management.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	sessions middleware.SessionResolver,
	verifier middleware.TokenVerifier,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(sessions, verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Uploaded Media
	// Covers and pages are written by the storage layer and served verbatim.
	fileServer := http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/static/uploads/*", fileServer.ServeHTTP)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/manga", h.Manga.Routes())
		api.Mount("/read", h.Chapter.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/bookmarks", h.Bookmark.Routes())
		api.Mount("/history", h.History.Routes())
		api.Mount("/me", h.Account.Routes())

		// Each admin group carries its own RequireAdmin guard.
		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/manga", h.Manga.AdminRoutes())
			admin.Mount("/chapters", h.Chapter.AdminRoutes())
			admin.Mount("/users", h.Account.AdminRoutes())
			admin.Mount("/comments", h.Comment.AdminRoutes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
