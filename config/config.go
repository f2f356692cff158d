package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	DBUrl       string
	// PgBouncer transaction mode needs the simple protocol
	DBSimpleProtocol bool
	DBMaxConns       int
	// Token verification: HS256 shared secret and/or RS256 JWKS endpoint
	AuthJWTSecret string
	AuthJWKSURL   string
	FrontendURL   string
	// Extra comma separated CORS origins on top of FrontendURL
	AllowedOrigins []string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitWriteThreshold  int
	// Community discovery
	CompatCacheTTLSeconds int
	CommunityMaxPageSize  int
	// Poster storage (S3 compatible)
	S3Endpoint        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string

	PosterMaxDimension  int
	PosterJPEGQuality   int
	// Per-user poster uploads per day; 0 disables the quota
	PosterUploadsPerDay int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBUrl:            getEnv("DATABASE_URL", ""),
		DBSimpleProtocol: getEnvBool("DATABASE_SIMPLE_PROTOCOL", false),
		DBMaxConns:       getEnvInt("DATABASE_MAX_CONNS", 25),
		AuthJWTSecret:    getEnv("AUTH_JWT_SECRET", ""),
		AuthJWKSURL:      getEnv("AUTH_JWKS_URL", ""),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins:   getEnvList("ALLOWED_ORIGINS"),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		// Rate limiting defaults
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 120),
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 30),
		CompatCacheTTLSeconds:    getEnvInt("COMPAT_CACHE_TTL_SECONDS", 600),
		CommunityMaxPageSize:     getEnvInt("COMMUNITY_MAX_PAGE_SIZE", 50),
		S3Endpoint:               strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3Region:                 getEnv("S3_REGION", "us-east-1"),
		S3Bucket:                 getEnv("S3_BUCKET", ""),
		S3AccessKeyID:            getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:        getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:          strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		PosterMaxDimension:       getEnvInt("POSTER_MAX_DIMENSION", 780),
		PosterJPEGQuality:        getEnvInt("POSTER_JPEG_QUALITY", 82),
		PosterUploadsPerDay:      getEnvInt("POSTER_UPLOADS_PER_DAY", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AuthJWTSecret == "" && cfg.AuthJWKSURL == "" {
		log.Println("WARNING: neither AUTH_JWT_SECRET nor AUTH_JWKS_URL is set. Every protected route will reject tokens.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting falls back to memory and compatibility scores are not cached.")
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PosterStorageEnabled reports whether enough S3 settings exist to upload posters.
func (c *Config) PosterStorageEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimRight(strings.TrimSpace(item), "/")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
