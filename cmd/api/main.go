package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/movies-backend/config"
	"github.com/dustin/movies-backend/internal/adapter"
	"github.com/dustin/movies-backend/internal/media"
	"github.com/dustin/movies-backend/internal/middleware"
	"github.com/dustin/movies-backend/internal/movie"
	"github.com/dustin/movies-backend/internal/ranking"
	"github.com/dustin/movies-backend/internal/rating"
	"github.com/dustin/movies-backend/internal/repository"
	"github.com/dustin/movies-backend/internal/review"
	"github.com/dustin/movies-backend/internal/user"
	"github.com/dustin/movies-backend/internal/worker"
	"github.com/dustin/movies-backend/pkg/database"
	"github.com/dustin/movies-backend/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize logger with validation and defaults
	appLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	appLogger.Info("Starting movies backend service")

	// Connect to database with validation and defaults
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: " + err.Error())
	}

	appLogger.Info("Database connection established")

	// Run database migrations for all feature models
	if err := db.AutoMigrate(&user.User{}, &media.Media{}, &movie.Movie{}, &review.Review{}, &rating.Rating{}); err != nil {
		appLogger.Fatal("Failed to migrate database: " + err.Error())
	}

	appLogger.Info("Database migration completed")

	// Initialize GORM-based repositories
	userRepo := repository.NewGORMUserRepository(db, appLogger)
	movieRepo := repository.NewGORMMovieRepository(db, appLogger)
	reviewRepo := repository.NewGORMReviewRepository(db, appLogger)
	ratingRepo := repository.NewGORMRatingRepository(db, appLogger)
	mediaRepo := repository.NewGORMMediaRepository(db, appLogger)
	rankingRepo := repository.NewGORMRankingRepository(db, appLogger)

	// Initialize business services with dependency injection
	mediaService, err := media.NewService(&cfg.Media, mediaRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media service: " + err.Error())
	}

	userService, err := user.NewService(&cfg.JWT, userRepo, adapter.NewMediaServiceToUserMediaService(mediaService), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize user service: " + err.Error())
	}

	movieService := movie.NewService(movieRepo, adapter.NewMediaServiceToMovieMediaService(mediaService), appLogger)

	// Create service adapters for rating and review movie lookups
	ratingMovieService := adapter.NewMovieServiceToRatingMovieService(movieService)
	reviewMovieService := adapter.NewMovieServiceToReviewMovieService(movieService)

	ratingService := rating.NewService(ratingRepo, ratingMovieService, appLogger)
	reviewService := review.NewService(reviewRepo, reviewMovieService, appLogger)
	rankingService := ranking.NewService(rankingRepo, appLogger)

	// Initial rank assignment - best effort, startup continues on failure
	if err := rankingService.RecomputeAllRanks(); err != nil {
		appLogger.Error("Initial rank recomputation failed: " + err.Error())
	}

	// Initialize HTTP handlers
	userHandler := user.NewHandler(userService)
	movieHandler := movie.NewHandler(movieService)
	reviewHandler := review.NewHandler(reviewService)
	ratingHandler := rating.NewHandler(ratingService)
	mediaHandler := media.NewHandler(mediaService)

	// Initialize background worker for periodic rank recomputation
	rankWorker, err := worker.NewRankWorker(
		&cfg.Worker,
		"rank-recompute",
		rankingService.RecomputeAllRanks,
		appLogger,
	)
	if err != nil {
		appLogger.Fatal("Failed to initialize rank worker: " + err.Error())
	}

	// Start background processing
	if err := rankWorker.Start(); err != nil {
		appLogger.Error("Failed to start rank worker: " + err.Error())
	}

	// Initialize rate limiter for mutating routes
	rateLimiter, err := middleware.NewRateLimiter(&cfg.RateLimit, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize rate limiter: " + err.Error())
	}

	// Setup HTTP router with middleware
	router := gin.New()

	// Configure standard middleware stack
	router.Use(requestid.New())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(rateLimiter.Middleware())

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "movies-backend",
		})
	})

	router.GET("/health/detailed", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"timestamp":   time.Now(),
			"service":     "movies-backend",
			"rank_worker": rankWorker.IsRunning(),
			"database":    "connected",
		})
	})

	// Cookie-aware JWT validation middleware
	authMiddleware := userHandler.AuthMiddleware()

	// API v1 routes - each feature manages its own routes
	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1, authMiddleware)
		movieHandler.RegisterRoutes(v1, authMiddleware)
		reviewHandler.RegisterRoutes(v1, authMiddleware)
		ratingHandler.RegisterRoutes(v1, authMiddleware)
		mediaHandler.RegisterRoutes(v1, authMiddleware)
	}

	// Parse server configuration with defaults
	serverPort := cfg.Server.Port
	if serverPort == "" {
		serverPort = "8080" // default
	}

	serverReadTimeout := 30 * time.Second // default
	if cfg.Server.ReadTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.ReadTimeout); err == nil {
			serverReadTimeout = duration
		}
	}

	serverWriteTimeout := 30 * time.Second // default
	if cfg.Server.WriteTimeout != "" {
		if duration, err := time.ParseDuration(cfg.Server.WriteTimeout); err == nil {
			serverWriteTimeout = duration
		}
	}

	serverEnvironment := cfg.Server.Environment
	if serverEnvironment == "" {
		serverEnvironment = "development" // default
	}

	// Start HTTP server
	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	// Start server in goroutine for graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server: " + err.Error())
		}
	}()

	appLogger.Info("Server started successfully on port " + serverPort + " (" + serverEnvironment + " environment)")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop rank worker first
	if err := rankWorker.Stop(); err != nil {
		appLogger.Error("Error stopping rank worker: " + err.Error())
	}

	if err := rateLimiter.Close(); err != nil {
		appLogger.Error("Error closing rate limiter: " + err.Error())
	}

	// Shutdown server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown: " + err.Error())
	}

	appLogger.Info("Server shutdown complete")
}
