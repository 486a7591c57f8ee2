package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	GeminiAPIKey string
	GeminiModel  string
	AppEnv       string
	IsProduction bool

	JWTSecret string
	Port      string

	// DatabaseDSN points at the hosted MySQL backend. Empty means local
	// sqlite (development only).
	DatabaseDSN string

	// runtime tunables
	TranslateTimeoutSeconds int
	RateLimitWindowSeconds  int
	RateLimitCapacity       int
	DuplicateWindowSeconds  int
	RevocationCacheMaxItems int
)

// loadAppEnv loads .env for non-production environments. Production reads
// everything from the host environment.
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "production" {
		return
	}
	// a missing .env is fine in development
	_ = godotenv.Load()
}

func init() {
	loadAppEnv()

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	GeminiModel = os.Getenv("GEMINI_MODEL")
	DatabaseDSN = os.Getenv("DATABASE_DSN")

	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "" {
		AppEnv = "development"
	}
	IsProduction = AppEnv == "production"

	if GeminiModel == "" {
		GeminiModel = "gemini-3-flash-preview"
	}

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	TranslateTimeoutSeconds = atoiOr(os.Getenv("TRANSLATE_TIMEOUT_SECONDS"), 30)
	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)
	DuplicateWindowSeconds = atoiOr(os.Getenv("DUPLICATE_WINDOW_SECONDS"), 45)
	RevocationCacheMaxItems = atoiOr(os.Getenv("REVOCATION_CACHE_MAX_ITEMS"), 500)

	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set in production")
	}

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] GeminiAPIKeyPresent=%v GeminiModel=%s", GeminiAPIKey != "", GeminiModel)
	log.Printf("[config] translateTimeout=%ds rateLimit window=%ds capacity=%d dupWindow=%ds",
		TranslateTimeoutSeconds, RateLimitWindowSeconds, RateLimitCapacity, DuplicateWindowSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
