package v1

import (
	"time"

	"go-movie-community-backend/config"
	"go-movie-community-backend/internal/delivery/http/middleware"
	"go-movie-community-backend/internal/domain"
	"go-movie-community-backend/internal/usecase"
	"go-movie-community-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	MovieUC     domain.MovieUsecase
	RatingUC    domain.RatingUsecase
	ProfileUC   domain.ProfileUsecase
	CommunityUC domain.CommunityUsecase
	AdminUC     domain.AdminUsecase
	HealthUC    usecase.HealthUsecase
	Verifier    middleware.TokenVerifier
	UploadQuota *security.UploadQuota
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CSRFMiddleware(cfg.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Token verified, local account may not exist yet
	tokenOnly := v1.Group("")
	tokenOnly.Use(middleware.TokenMiddleware(deps.Verifier))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.AuthUC))
	protected.Use(middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig(cfg.RateLimitWriteThreshold, window)))

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())

	NewAuthHandler(tokenOnly, protected, deps.AuthUC)
	NewMovieHandler(v1, protected, deps.MovieUC, deps.RatingUC, deps.UploadQuota)
	NewRatingHandler(protected, deps.RatingUC)
	NewUserHandler(protected, deps.ProfileUC)
	NewCommunityHandler(protected, deps.CommunityUC)
	NewAdminHandler(admin, deps.AdminUC)

	return r
}
