package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment-provided settings for the service.
type Config struct {
	Port             string
	MongoURI         string
	DatabaseName     string
	JWTSecret        string
	GeminiAPIKey     string
	SendGridAPIKey   string
	EmailFromName    string
	EmailFromAddress string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. The JWT secret has no default; startup refuses to continue
// without one.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using system environment variables")
	}

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		DatabaseName:     getEnv("MONGO_DATABASE", "promptpilot"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "PromptPilot"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "no-reply@promptpilot.app"),
	}

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
