package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nclex-prep/backend/internal/api"
	"github.com/nclex-prep/backend/internal/infrastructure/config"
	"github.com/nclex-prep/backend/internal/store"

	_ "github.com/nclex-prep/backend/docs" // generated swagger docs
)

// @title           NCLEX Practice API
// @version         1.0
// @description     Random NCLEX practice question delivery with exclusion of recently seen items.

// @host      localhost:4000
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	questions := store.NewMongo(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	// Connects in the background with backoff; requests arriving before the
	// connection is ready fail fast instead of hanging.
	questions.Start(ctx)
	defer questions.Close(context.Background())

	handler := api.NewHandler(questions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: RequestID → Logging → CORS → mux ──────────
	chained := api.Chain(mux, api.RequestID, api.Logging(logger), api.CORS)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           chained,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
