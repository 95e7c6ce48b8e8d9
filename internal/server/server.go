// Package server wires the application together: database, services,
// handlers, middleware, and routes, plus startup and graceful shutdown.
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
	"github.com/go-chi/cors"

	"github.com/mjovanc/jobboard/internal/handler"
	"github.com/mjovanc/jobboard/internal/middleware"
	sqliteRepo "github.com/mjovanc/jobboard/internal/repository/sqlite"
	"github.com/mjovanc/jobboard/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port         int
	DatabaseURL  string // SQLite path; required, validated before New is called
	APIKey       string // empty disables the gate entirely
	APIKeyHeader string // defaults to middleware.DefaultAPIKeyHeader
	APIKeyMode   string // "require" (default) or "log"
}

// Server owns the router and the database pool; the pool is closed during
// graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, initializes the schema, and assembles the
// dependency chain. A schema failure here is returned to main, which treats
// it as fatal; the server never starts serving against an uninitialized
// store.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	apiKeyHeader := s.config.APIKeyHeader
	if apiKeyHeader == "" {
		apiKeyHeader = middleware.DefaultAPIKeyHeader
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", apiKeyHeader},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	userHandler := handler.NewUserHandler(service.NewUserService(s.db.Users(), s.logger))
	jobHandler := handler.NewJobHandler(service.NewJobService(s.db.Jobs(), s.logger))
	applicationHandler := handler.NewApplicationHandler(service.NewApplicationService(s.db.Applications(), s.logger))

	s.router.Route("/v1", func(r chi.Router) {
		// The gate sits in front of routing, not inside handlers. With no
		// key configured the chain is fully permissive.
		if s.config.APIKey != "" {
			gate := middleware.APIKeyGate(apiKeyHeader, s.config.APIKey)
			if s.config.APIKeyMode == "log" {
				r.Use(middleware.LogGate(gate, s.logger))
			} else {
				r.Use(middleware.RequireGate(gate, s.logger))
			}
		}

		r.Get("/users", userHandler.HandleList)
		r.Get("/users/{id}", userHandler.HandleGetByID)
		r.Post("/users", userHandler.HandleCreate)
		r.Put("/users/{id}", userHandler.HandleUpdate)
		r.Delete("/users/{id}", userHandler.HandleDelete)

		r.Get("/jobs", jobHandler.HandleList)
		r.Get("/jobs/{id}", jobHandler.HandleGetByID)
		r.Post("/jobs", jobHandler.HandleCreate)
		r.Put("/jobs/{id}", jobHandler.HandleUpdate)
		r.Delete("/jobs/{id}", jobHandler.HandleDelete)

		r.Get("/applications", applicationHandler.HandleList)
		r.Get("/applications/{id}", applicationHandler.HandleGetByID)
		r.Post("/applications", applicationHandler.HandleCreate)
		r.Put("/applications/{id}", applicationHandler.HandleUpdate)
		r.Delete("/applications/{id}", applicationHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
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
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DatabaseURL),
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
