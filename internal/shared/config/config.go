package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	AllowedOrigins       []string
	PublicBaseURL        string
	WebhookSecret        string
	WebhookTimeout       time.Duration
	RateLimitingEnabled  bool
	DuplicateDetectionOn bool
	MonitoringEnabled    bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		AllowedOrigins:       splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		PublicBaseURL:        strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		WebhookSecret:        os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:       timeoutMillis(getEnv("WEBHOOK_TIMEOUT", "30000")),
		RateLimitingEnabled:  enabledFlag(os.Getenv("ENABLE_RATE_LIMITING")),
		DuplicateDetectionOn: enabledFlag(os.Getenv("ENABLE_DUPLICATE_DETECTION")),
		MonitoringEnabled:    enabledFlag(os.Getenv("ENABLE_WEBHOOK_MONITORING")),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// enabledFlag implements the default-on convention: a feature stays enabled
// unless the variable is explicitly 'false'.
func enabledFlag(raw string) bool {
	return !strings.EqualFold(strings.TrimSpace(raw), "false")
}

func timeoutMillis(raw string) time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || ms <= 0 {
		ms = 30000
	}
	return time.Duration(ms) * time.Millisecond
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
