package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"streamhub/database"
	"streamhub/internal/cache"
	"streamhub/internal/config"
	"streamhub/internal/http-api/handler"
	"streamhub/internal/http-api/middleware"
	"streamhub/internal/http-api/repository"
	"streamhub/internal/http-api/service"
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

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// The API runs without Redis; the nil cache is a no-op.
	catalogueCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("Redis unavailable, running without catalogue cache", "error", err)
		catalogueCache = nil
	}

	// Repositories
	txRunner := repository.NewTxRunner(db)
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	movieRepo := repository.NewMovieRepo(db)
	comicRepo := repository.NewComicRepo(db)
	collectionRepo := repository.NewCollectionRepository(db)
	gamificationRepo := repository.NewGamificationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	movieSvc := service.NewMovieService(movieRepo, catalogueCache)
	comicSvc := service.NewComicService(comicRepo, catalogueCache)
	gamificationSvc := service.NewGamificationService(txRunner, gamificationRepo, notificationRepo)
	collectionSvc := service.NewCollectionService(txRunner, collectionRepo, userRepo, movieRepo, comicRepo, gamificationSvc)
	notificationSvc := service.NewNotificationService(notificationRepo)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	handler.NewAuthHandler(authSvc).RegisterRoutes(api.Group("/auth"))
	handler.NewMovieHandler(movieSvc).RegisterRoutes(api.Group("/movies"), authSvc)
	handler.NewComicHandler(comicSvc).RegisterRoutes(api.Group("/comics"), authSvc)
	handler.NewCollectionHandler(collectionSvc).RegisterRoutes(api.Group("/collections"), authSvc)
	handler.NewGamificationHandler(gamificationSvc).RegisterRoutes(api.Group("/gamification"), authSvc)
	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(api.Group("/notifications"), authSvc)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server running", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
