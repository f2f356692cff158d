package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-movie-community-backend/config"
	v1 "go-movie-community-backend/internal/delivery/http/v1"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/internal/repository/cache"
	"go-movie-community-backend/internal/repository/postgres"
	"go-movie-community-backend/internal/usecase"
	"go-movie-community-backend/pkg/auth"
	"go-movie-community-backend/pkg/database"
	"go-movie-community-backend/pkg/logger"
	"go-movie-community-backend/pkg/redis"
	"go-movie-community-backend/pkg/security"
	"go-movie-community-backend/pkg/storage"
	"go-movie-community-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Movie Community API
// @version         1.0
// @description     Movie ratings and community discovery backend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting movie community backend", "port", cfg.Port, "env", cfg.Environment)
	secLog := security.InitSecurityLogger("movie-community-backend", cfg.Environment)
	defer secLog.Sync()

	// 3. Setup Database
	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	dbPool, err := database.NewPostgresConnection(startCtx, cfg.DBUrl, database.PoolOptions{
		MaxConns:       int32(cfg.DBMaxConns),
		SimpleProtocol: cfg.DBSimpleProtocol,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisCheck func(ctx context.Context) error
	var scoreCache domain.ScoreCache
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting and no score cache", "error", err)
		}
	} else {
		defer redis.Close()
		redisCheck = redis.HealthCheck
		scoreCache = cache.NewScoreCache(redis.Client(), time.Duration(cfg.CompatCacheTTLSeconds)*time.Second)
	}

	// 5. Setup Poster Storage (optional)
	var posters domain.PosterStorage
	if cfg.PosterStorageEnabled() {
		s3Storage, err := storage.NewS3Storage(startCtx, storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			logger.Log.Warn("Poster storage disabled", "error", err)
		} else {
			posters = s3Storage
		}
	} else {
		logger.Log.Warn("S3 not configured - poster uploads will be unavailable")
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	movieRepo := postgres.NewMovieRepository(dbPool)
	ratingRepo := postgres.NewRatingRepository(dbPool)
	communityRepo := postgres.NewCommunityRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(userRepo)
	movieUC := usecase.NewMovieUsecase(movieRepo, posters, validate, usecase.PosterOptions{
		MaxDimension: cfg.PosterMaxDimension,
		JPEGQuality:  cfg.PosterJPEGQuality,
	})
	ratingUC := usecase.NewRatingUsecase(ratingRepo, movieRepo, validate)
	profileUC := usecase.NewProfileUsecase(userRepo, ratingRepo, validate)
	communityUC := usecase.NewCommunityUsecase(communityRepo, scoreCache, cfg.CommunityMaxPageSize)
	adminUC := usecase.NewAdminUsecase(adminRepo)
	healthUC := usecase.NewHealthUsecase(dbPool, redisCheck)

	// 8. Setup Token Verifier
	var jwksProvider *auth.Provider
	if cfg.AuthJWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.AuthJWKSURL)
	}
	verifier := auth.NewVerifier(cfg.AuthJWTSecret, jwksProvider)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		MovieUC:     movieUC,
		RatingUC:    ratingUC,
		ProfileUC:   profileUC,
		CommunityUC: communityUC,
		AdminUC:     adminUC,
		HealthUC:    healthUC,
		Verifier:    verifier,
		UploadQuota: security.NewUploadQuota(cfg.PosterUploadsPerDay, 24*time.Hour),
		Config:      cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
