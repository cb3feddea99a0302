package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Storage
	DatabasePath string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64
	MaxPages       int

	// Job state
	JobTTL time.Duration

	// Parsing
	ParseTimeout         time.Duration
	PDFFallbackPdftotext bool
	IncludeRawDefault    bool

	// Observability
	MetricsNamespace string
	StatsWindow      time.Duration
}

// Load reads configuration from the environment. Variables in envFiles (or
// ./.env when none are given) are applied first without overriding values
// already set; a missing file is not an error.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("BRIEFGEST_API_KEY"),

		DatabasePath: envOr("DATABASE_PATH", "briefgest.db"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
		MaxPages:       envInt("MAX_PAGES", 10),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ParseTimeout:         envDuration("PARSE_TIMEOUT", 30*time.Second),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		IncludeRawDefault:    envBool("INCLUDE_RAW_DEFAULT", false),

		MetricsNamespace: envOr("METRICS_NAMESPACE", "briefgest"),
		StatsWindow:      envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	// 0 disables the page cap.
	if cfg.MaxPages < 0 {
		cfg.MaxPages = 10
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ParseTimeout <= 0 {
		cfg.ParseTimeout = 30 * time.Second
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BRIEFGEST_API_KEY is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
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

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
