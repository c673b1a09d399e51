package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	// Capability flags: optional integrations are opted into through
	// configuration, never probed for at runtime.
	SearchEnabled  bool
	UploadsEnabled bool

	JWTSecret string

	ReminderCron string
	CleanupCron  string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		SearchEnabled:  getEnvBool("SEARCH_ENABLED", false),
		UploadsEnabled: getEnvBool("UPLOADS_ENABLED", false),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		// Reminders hourly, expired-homework cleanup daily at midnight.
		ReminderCron: getEnv("REMINDER_CRON", "0 * * * *"),
		CleanupCron:  getEnv("CLEANUP_CRON", "0 0 * * *"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
