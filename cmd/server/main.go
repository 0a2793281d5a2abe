package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepmind/neetprep-backend/internal/config"
	"github.com/prepmind/neetprep-backend/internal/database"
	"github.com/prepmind/neetprep-backend/internal/handler"
	"github.com/prepmind/neetprep-backend/internal/llm"
	"github.com/prepmind/neetprep-backend/internal/logger"
	"github.com/prepmind/neetprep-backend/internal/repository"
	"github.com/prepmind/neetprep-backend/internal/router"
	"github.com/prepmind/neetprep-backend/internal/service"
	"github.com/prepmind/neetprep-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("model", cfg.GroqModel).
		Msg("Starting NEET Prep Backend")

	if cfg.GroqAPIKey == "" {
		log.Warn().Msg("GROQ_API_KEY is empty; question generation and pattern analysis will fail")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	responseRepo := repository.NewResponseRepository(pool)
	patternRepo := repository.NewPatternRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	groq := llm.NewGroqClient(cfg)

	authService := service.NewAuthService(cfg)
	questionService := service.NewQuestionService(questionRepo, groq, log)
	statsService := service.NewStatsService(responseRepo, rdb, cfg.ResultsFetchCap, log)
	sessionService := service.NewTestSessionService(questionService, responseRepo, statsService, log)
	patternService := service.NewPatternService(responseRepo, questionRepo, patternRepo, groq, rdb, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Test:     handler.NewTestHandler(sessionService, statsService),
		Question: handler.NewQuestionHandler(questionService),
		Pattern:  handler.NewPatternHandler(patternService),
		Stats:    handler.NewStatsHandler(statsService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
