package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prepmind/neetprep-backend/internal/config"
	"github.com/prepmind/neetprep-backend/internal/handler"
	"github.com/prepmind/neetprep-backend/internal/middleware"
	"github.com/prepmind/neetprep-backend/internal/response"
	"github.com/prepmind/neetprep-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Test     *handler.TestHandler
	Question *handler.QuestionHandler
	Pattern  *handler.PatternHandler
	Stats    *handler.StatsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(authService *service.AuthService, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Model-backed endpoints are slow and metered upstream; keep the
	// limiter tight (10 requests per minute per IP).
	llmLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/device", handlers.Auth.RegisterDevice)
	}

	// ─── 2. Device Group (JWT) ─────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireDeviceJWT(authService))
	{
		api.POST("/tests", llmLimiter.Middleware(), handlers.Test.StartTest)
		api.GET("/tests/current", handlers.Test.GetCurrent)
		api.POST("/tests/answer", handlers.Test.SubmitAnswer)
		api.POST("/tests/next", handlers.Test.NextQuestion)
		api.POST("/tests/end", handlers.Test.EndTest)
		api.DELETE("/tests", handlers.Test.ResetTest)

		api.GET("/results/:test_id", handlers.Test.GetTestResults)
		api.GET("/stats", handlers.Stats.GetUserStats)

		api.POST("/questions/generate", llmLimiter.Middleware(), handlers.Question.Generate)

		api.POST("/patterns/analyze", llmLimiter.Middleware(), handlers.Pattern.Analyze)
		api.GET("/patterns", handlers.Pattern.ListPatterns)
		api.POST("/patterns/:pattern_id/resolve", handlers.Pattern.ResolvePattern)
	}

	return router
}
