package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Scheduling parameters. Defaults follow standard SM-2.
	NewCardsPerSession  int
	MatureThresholdDays int
	MinEaseFactor       float64
	StartingEaseFactor  float64

	// Review queue size handed to a session.
	SessionCardLimit int

	// Background progress-refresh workers.
	ProgressWorkerCount int
	ProgressQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:wordflash.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		NewCardsPerSession:  envIntOr("NEW_CARDS_PER_SESSION", 10),
		MatureThresholdDays: envIntOr("MATURE_THRESHOLD_DAYS", 21),
		MinEaseFactor:       envFloatOr("MIN_EASE_FACTOR", 1.3),
		StartingEaseFactor:  envFloatOr("STARTING_EASE_FACTOR", 2.5),
		SessionCardLimit:    envIntOr("SESSION_CARD_LIMIT", 20),
		ProgressWorkerCount: envIntOr("PROGRESS_WORKER_COUNT", 1),
		ProgressQueueSize:   envIntOr("PROGRESS_QUEUE_SIZE", 32),
	}
}

// Validate checks the configuration for values that would break the
// scheduler or the server, collecting every problem into one error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.NewCardsPerSession < 1 {
		problems = append(problems, "NEW_CARDS_PER_SESSION must be at least 1")
	}
	if c.MatureThresholdDays < 1 {
		problems = append(problems, "MATURE_THRESHOLD_DAYS must be at least 1")
	}
	if c.MinEaseFactor < 1.0 {
		problems = append(problems, "MIN_EASE_FACTOR must be at least 1.0")
	}
	if c.StartingEaseFactor < c.MinEaseFactor {
		problems = append(problems, "STARTING_EASE_FACTOR must not be below MIN_EASE_FACTOR")
	}
	if c.SessionCardLimit < 1 {
		problems = append(problems, "SESSION_CARD_LIMIT must be at least 1")
	}
	if c.ProgressWorkerCount < 1 {
		problems = append(problems, "PROGRESS_WORKER_COUNT must be at least 1")
	}
	if c.ProgressQueueSize < 1 {
		problems = append(problems, "PROGRESS_QUEUE_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
