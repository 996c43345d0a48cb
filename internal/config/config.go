// Package config loads runtime configuration from environment variables
// with sensible defaults. The .env file, if any, is loaded by cmd/server
// before Load runs.
package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string
	Env      string
	DBDriver string
	DBDSN    string
}

// Load reads configuration from the environment.
// Precedence: explicit env var > .env file (loaded by the caller) > default.
func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("DB_DSN", "salesdesk.db"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewLogger builds the process logger: JSON in production, text
// elsewhere, level from LOG_LEVEL.
func NewLogger(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if env == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
