package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"gamehub/database"
	"gamehub/internal/api/handler"
	"gamehub/internal/api/middleware"
	"gamehub/internal/api/repository"
	"gamehub/internal/api/service"
	"gamehub/internal/cache"
	"gamehub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("could not get database instance: %v", err)
	}
	defer sqlDB.Close()

	// Cache is best effort; the API works without redis.
	var gameCache *cache.GameCache
	if cfg.RedisAddr != "" {
		gameCache, err = cache.NewGameCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, game cache disabled", "error", err)
			gameCache = nil
		} else {
			defer gameCache.Close()
		}
	}

	// Repositories
	reviewRepo := repository.NewReviewRepository(db)
	gameRepo := repository.NewGameRepository(db)
	publisherRepo := repository.NewPublisherRepository(db)
	developerRepo := repository.NewDeveloperRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	reviewService := service.NewReviewService(reviewRepo, gameRepo, gameCache)
	gameService := service.NewGameService(gameRepo, publisherRepo, developerRepo, gameCache)
	userService := service.NewUserService(userRepo, gameCache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	gameHandler := handler.NewGameHandler(gameService)
	userHandler := handler.NewUserHandler(userService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(authService)
	adminOnly := middleware.RequireAdmin()

	api := r.Group("/api")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	authHandler.RegisterRoutes(api)
	gameHandler.RegisterRoutes(api, authRequired, adminOnly)
	reviewHandler.RegisterRoutes(api, authRequired, adminOnly)
	userHandler.RegisterRoutes(api, authRequired, adminOnly)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
