package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	OpenAIAPIKey          string
	GoogleCredentialsFile string

	// Optional with defaults
	DBPath            string
	HTTPPort          int
	OpenAIModel       string
	OpenAITemperature float64
	Timezone          string
	ResendAPIKey      string
	EmailFrom         string
	NotifyEmail       string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),

		// Optional with defaults
		DBPath:            getEnvOrDefault("BUTLER_DB_PATH", "./butler.db"),
		HTTPPort:          getEnvAsIntOrDefault("BUTLER_HTTP_PORT", 8080),
		OpenAIModel:       getEnvOrDefault("BUTLER_OPENAI_MODEL", "gpt-4o"),
		OpenAITemperature: getEnvAsFloatOrDefault("BUTLER_OPENAI_TEMPERATURE", 0.2),
		Timezone:          getEnvOrDefault("BUTLER_TIMEZONE", "Europe/London"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		EmailFrom:         getEnvOrDefault("BUTLER_EMAIL_FROM", "Butler <onboarding@resend.dev>"),
		NotifyEmail:       os.Getenv("BUTLER_NOTIFY_EMAIL"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
