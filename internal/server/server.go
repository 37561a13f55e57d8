// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. It is the composition root: every dependency chain (DB → repository
// → service → handler) is assembled here, in one place, rather than scattered
// across the codebase. main.go stays minimal — load config, start the server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aminah/showtrack/internal/auth"
	"github.com/aminah/showtrack/internal/config"
	"github.com/aminah/showtrack/internal/handler"
	"github.com/aminah/showtrack/internal/middleware"
	sqliteRepo "github.com/aminah/showtrack/internal/repository/sqlite"
	"github.com/aminah/showtrack/internal/service"
)

// Server owns the router, the database connection, and the configuration.
// The DB is closed during graceful shutdown so the WAL is flushed and the
// file lock released.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
//
// Each layer only receives what it needs: services get repository
// interfaces (not the concrete sqlite.DB), handlers get services (not
// repositories). The handler never touches the database; the service never
// touches HTTP.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, assembles the service graph, and maps
// every route.
//
// ROUTE STRUCTURE:
//
//	GET    /api/shows                          → catalog with filter/sort query params
//	GET    /api/shows/{id}                     → single show
//	GET    /api/shows/title/{title}            → shows by exact title
//	POST   /api/shows                          → create show
//	PUT    /api/shows/{id}                     → replace show
//	DELETE /api/shows/{id}                     → delete show
//	POST   /api/shows/import                   → bulk CSV import
//	POST   /api/users                          → register
//	GET    /api/users/{id}                     → profile with both lists
//	GET    /api/users/{id}/shows?list=...      → resolve a list to shows
//	POST   /api/users/{id}/{list}              → add show to a list
//	DELETE /api/users/{id}/{list}/{showId}     → remove show from a list
//	GET    /auth/google/login|callback         → OAuth flow
//	POST   /auth/register|login|logout         → local accounts and sessions
//	GET    /api/me                             → current user (requires auth)
//
// Middleware order matters: RequestID and RealIP first so the logger can
// use them, Recoverer before the handlers so a panic becomes a 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Service graph. s.db satisfies all three repository interfaces.
	showService := service.NewShowService(s.db, s.logger)
	listService := service.NewListService(s.db, s.db, s.db, s.logger)

	tokens, authService, err := s.buildAuth()
	if err != nil {
		return err
	}

	showHandler := handler.NewShowHandler(showService)
	userHandler := handler.NewUserHandler(authService, listService)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/shows", showHandler.List)
		r.Get("/shows/{id}", showHandler.Get)
		r.Get("/shows/title/{title}", showHandler.GetByTitle)
		r.Post("/shows", showHandler.Create)
		r.Post("/shows/import", showHandler.Import)
		r.Put("/shows/{id}", showHandler.Update)
		r.Delete("/shows/{id}", showHandler.Delete)

		r.Post("/users", userHandler.Create)
		r.Get("/users/{id}", userHandler.Get)
		r.Get("/users/{id}/shows", userHandler.ListShows)
		// {list} is constrained by regex to the two valid list names, so
		// /users/{id}/anything-else falls through to 404.
		r.Post("/users/{id}/{list:watchlist|watched}", userHandler.AddToList)
		r.Delete("/users/{id}/{list:watchlist|watched}/{showId}", userHandler.RemoveFromList)
	})

	// The auth surface only mounts when a JWT secret is configured. The
	// catalog and lists stay fully usable without it — this app's trust
	// model is "personal instance", not "multi-tenant SaaS".
	if tokens != nil {
		google := auth.NewGoogleProvider(
			s.config.Auth.Google.ClientID,
			s.config.Auth.Google.ClientSecret,
			s.config.Auth.Google.CallbackURL,
		)
		authHandler := handler.NewAuthHandler(
			authService, google,
			s.config.Server.SecureCookies,
			s.config.Server.PostLoginRedirect,
		)

		s.router.Route("/auth", func(r chi.Router) {
			r.Get("/google/login", authHandler.GoogleLogin)
			r.Get("/google/callback", authHandler.GoogleCallback)
			// Same operation as POST /api/users; mounted here too so the
			// whole sign-in surface lives under one prefix.
			r.Post("/register", userHandler.Create)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		s.router.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/api/me", authHandler.Me)
		})
	} else {
		s.logger.Warn("no JWT secret configured, /auth routes disabled")
	}

	return nil
}

// buildAuth assembles the token and auth services. With no secret
// configured, sessions are off but registration and profile reads still
// work, so AuthService is always returned.
func (s *Server) buildAuth() (*auth.TokenService, *service.AuthService, error) {
	var tokens *auth.TokenService
	if s.config.Auth.JWTSecret != "" {
		var err error
		tokens, err = auth.NewTokenService(s.config.Auth.JWTSecret)
		if err != nil {
			return nil, nil, fmt.Errorf("creating token service: %w", err)
		}
	}

	authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)
	return tokens, authService, nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("database", s.config.Database.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
