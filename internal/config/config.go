// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is everything the server binary needs to start.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds.
	ListenAddr string
	// LogLevel is a logrus level name, e.g. "info" or "debug".
	LogLevel string
	// AllowedOrigins feeds the websocket origin check. Empty allows
	// same-origin only.
	AllowedOrigins []string
}

// Load reads the environment, after letting a .env file fill any gaps.
// A missing .env is not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env")
	}
	return Config{
		ListenAddr:     getenv("CRIBBAGE_LISTEN_ADDR", ":8080"),
		LogLevel:       getenv("CRIBBAGE_LOG_LEVEL", "info"),
		AllowedOrigins: splitList(os.Getenv("CRIBBAGE_ALLOWED_ORIGINS")),
	}
}

// LogrusLevel parses the configured level, falling back to info.
func (c Config) LogrusLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
