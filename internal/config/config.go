package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// session settings
	JWTSecret         string
	SessionTTLMinutes int

	// admin seed (skipped when username/password empty)
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	AdminRoleID   int64

	// optional session revocation store
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// tracing
	OTELEnabled  bool
	OTELEndpoint string
}

func Load() Config {
	// pick up a local .env if present, real env vars win
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		JWTSecret:         getEnv("JWT_SECRET", "dev-insecure-secret"),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 720),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminRoleID:   int64(getEnvInt("ADMIN_ROLE_ID", 1)),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTELEnabled:  getEnv("OTEL_ENABLED", "") == "true",
		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "useradmin")
	pass := getEnv("DB_PASSWORD", "useradmin")
	name := getEnv("DB_NAME", "useradmin")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
