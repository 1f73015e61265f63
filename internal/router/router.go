package router

import (
	"context"
	"net/http"
	"time"

	"github.com/easy2drive/quiz-backend/internal/config"
	"github.com/easy2drive/quiz-backend/internal/handler"
	"github.com/easy2drive/quiz-backend/internal/middleware"
	"github.com/easy2drive/quiz-backend/internal/response"
	"github.com/easy2drive/quiz-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// catalogMaxAge is how long clients may cache catalog responses, in seconds.
const catalogMaxAge = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Score    *handler.ScoreHandler
	Quiz     *handler.QuizHandler
	Result   *handler.ResultHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background work owned by the router, such as rate limiter cleanup.
func SetupRouter(
	ctx context.Context,
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.GinMode != gin.TestMode {
		router.Use(gin.Logger())
	}

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	authLimiter := middleware.NewRateLimiter(ctx, 30, time.Minute)
	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Catalog Group (Public, Cacheable) ──────────────────────────
	catalog := api.Group("")
	catalog.Use(middleware.CacheControl(catalogMaxAge))
	{
		catalog.GET("/categories", handlers.Category.ListCategories)
		catalog.GET("/categories/:id/questions", handlers.Category.ListCategoryQuestions)
		catalog.GET("/score", handlers.Score.GetScore)
	}

	// ─── 3. Learner Group (JWT) ────────────────────────────────────────
	learner := api.Group("")
	learner.Use(middleware.RequireUserJWT(authService), middleware.NoStore())
	{
		learner.POST("/quiz", handlers.Quiz.CreateQuiz)
		learner.POST("/quiz/:attempt_id/submit", handlers.Quiz.SubmitQuiz)
		learner.GET("/results", handlers.Result.GetHistory)
		learner.GET("/mistakes", handlers.Result.GetMistakes)
	}

	return router
}
