/*
Package config sources runtime configuration from the environment.

PURPOSE:
  One place that knows about environment variables. A local .env file is
  loaded best-effort for development; deployed environments inject real
  variables and the missing file is not an error.

VARIABLES:
  PORT        HTTP listen port            (default 8080)
  DB_PATH     SQLite database path        (default production.db,
              ":memory:" for ephemeral)
  LOG_LEVEL   logrus level name           (default info)
  LOG_FORMAT  "json" or "text"            (default text)
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort   = 8080
	defaultDBPath = "production.db"
)

// Config holds application configuration sourced from environment
// variables. Command-line flags override it in main.
type Config struct {
	Port      int
	DBPath    string
	LogLevel  string
	LogFormat string
}

// Load reads the environment (plus a local .env, if present) and returns
// a populated Config. Invalid values fall back to defaults with a
// warning rather than failing startup.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:      defaultPort,
		DBPath:    defaultDBPath,
		LogLevel:  "info",
		LogFormat: "text",
	}

	if s := os.Getenv("PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil || port < 1 || port > 65535 {
			logrus.WithField("PORT", s).Warn("invalid PORT, using default")
		} else {
			cfg.Port = port
		}
	}
	if s := os.Getenv("DB_PATH"); s != "" {
		cfg.DBPath = s
	}
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		cfg.LogLevel = s
	}
	if s := os.Getenv("LOG_FORMAT"); s != "" {
		cfg.LogFormat = s
	}
	return cfg
}

// NewLogger builds the application logger from the config.
func NewLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.WithField("LOG_LEVEL", cfg.LogLevel).Warn("invalid LOG_LEVEL, using info")
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
