// Command server is the job board API entry point: it loads configuration,
// sets up logging, and starts the HTTP server. All logic lives in the
// internal packages.
package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mjovanc/jobboard/internal/server"
)

func main() {
	// A missing .env is fine; real environment variables win either way.
	_ = godotenv.Load()

	level := slog.LevelDebug
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelDebug
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	// DATABASE_URL is the SQLite path. Its absence is a startup failure,
	// never a per-request one.
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Error("DATABASE_URL must be set")
		os.Exit(1)
	}

	port := 8080
	if raw := os.Getenv("PORT"); raw != "" {
		var err error
		port, err = strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", raw))
			os.Exit(1)
		}
	}

	cfg := server.Config{
		Port:         port,
		DatabaseURL:  databaseURL,
		APIKey:       os.Getenv("API_KEY"),
		APIKeyHeader: os.Getenv("API_KEY_HEADER"),
		APIKeyMode:   os.Getenv("API_KEY_MODE"),
	}
	if cfg.APIKey == "" {
		logger.Warn("API_KEY not set, all requests are allowed through")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
