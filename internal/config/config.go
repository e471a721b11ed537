package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	SessionTTL      time.Duration
	Environment     string
	AllowedOrigins  []string
	CloudinaryURL   string
	UploadDir       string
	PublicBaseURL   string
	RateLimitMax    int
	RateLimitWindow time.Duration
	DeliveryFee     float64
	PostmarkToken   string
	EmailSender     string
}

// IsProduction reports whether cookies must be issued cross-site and secure.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		Port:            getEnvOrDefault("PORT", "5001"),
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET_KEY", ""),
		SessionTTL:      getDurationEnv("SESSION_TTL", 7, 24*time.Hour),
		Environment:     getEnvOrDefault("APP_ENV", "development"),
		AllowedOrigins:  getListEnv("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"}),
		CloudinaryURL:   getEnvOrDefault("CLOUDINARY_URL", ""),
		UploadDir:       getEnvOrDefault("UPLOAD_DIR", "./public/uploads"),
		PublicBaseURL:   strings.TrimRight(getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:5001"), "/"),
		RateLimitMax:    getIntEnv("RATE_LIMIT_MAX", 300),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", 15, time.Minute),
		DeliveryFee:     getFloatEnv("DELIVERY_FEE", 5),
		PostmarkToken:   getEnvOrDefault("POSTMARK_API_TOKEN", ""),
		EmailSender:     getEnvOrDefault("EMAIL_SENDER", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue)) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	out := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
