package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
// An empty DBConnString selects the in-memory backend.
type Config struct {
	HTTPAddr           string
	DBConnString       string
	JWTSecret          string
	TokenTTL           time.Duration
	UploadDir          string
	MaxUploadBytes     int64
	CORSAllowedOrigins string
	ShutdownTimeout    time.Duration
	HTTPLogEnabled     bool
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":5000"),
		DBConnString:       envOrDefault("DB_DSN", ""),
		JWTSecret:          envOrDefault("JWT_SECRET", "your-secret-key-change-in-production"),
		TokenTTL:           envDuration("TOKEN_TTL_HOURS", 24*time.Hour),
		UploadDir:          envOrDefault("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:     envInt64("MAX_UPLOAD_BYTES", 5<<20),
		CORSAllowedOrigins: envOrDefault("CORS_ALLOWED_ORIGINS", "*"),
		ShutdownTimeout:    envDurationSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		HTTPLogEnabled:     envBool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as a slice. A single "*"
// means every origin.
func (c Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return def
}

func envDurationSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
