// Package config loads process configuration from the environment, with an
// optional .env file for development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server process.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// Env selects logger and server behavior: "development" or "production".
	Env string
	// DBType is "sqlite" or "postgres".
	DBType string
	// DBPath is the sqlite database file path.
	DBPath string
	// DatabaseURL is the postgres connection URL.
	DatabaseURL string
	// SessionTTL is how long login sessions stay valid.
	SessionTTL time.Duration
	// MinAnswerLen is the minimum trimmed length of a project answer.
	MinAnswerLen int
	// AnswerSubmitCompletes also marks a module complete when its project
	// answers are accepted.
	AnswerSubmitCompletes bool
	// CourseHours is the workload printed on the certificate.
	CourseHours int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:                  envString("ADDR", ":8080"),
		Env:                   envString("ENV", "development"),
		DBType:                envString("DB_TYPE", "sqlite"),
		DBPath:                envString("DB_PATH", "data/ctcourse.db"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SessionTTL:            time.Duration(envInt("SESSION_TTL_HOURS", 72)) * time.Hour,
		MinAnswerLen:          envInt("MIN_ANSWER_LENGTH", 10),
		AnswerSubmitCompletes: envBool("ANSWER_SUBMIT_COMPLETES", false),
		CourseHours:           envInt("COURSE_HOURS", 24),
	}
}

// DSN returns the data source name for the configured database type.
func (c *Config) DSN() string {
	if c.DBType == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
