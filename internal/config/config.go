package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string

	SMSProviderURL      string
	SMSProviderUsername string
	SMSProviderAPIKey   string

	// Cron specs for the two recurring sweeps. The reminder sweep runs
	// independently of each alert's own reminder_frequency.
	ReminderCron    string
	SnoozeResetCron string

	// How far back the reminder sweep looks when deciding whether a
	// recipient is due for re-delivery.
	ReminderLookback time.Duration

	AnalyticsCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "alerts@example.com"),

		SMSProviderURL:      getEnv("SMS_PROVIDER_URL", ""),
		SMSProviderUsername: getEnv("SMS_PROVIDER_USERNAME", ""),
		SMSProviderAPIKey:   getEnv("SMS_PROVIDER_API_KEY", ""),

		ReminderCron:    getEnv("REMINDER_CRON", "0 */2 * * *"),
		SnoozeResetCron: getEnv("SNOOZE_RESET_CRON", "0 0 * * *"),

		ReminderLookback: getDurationEnv("REMINDER_LOOKBACK", 2*time.Hour),

		AnalyticsCacheTTL: getDurationEnv("ANALYTICS_CACHE_TTL", time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
