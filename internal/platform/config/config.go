package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration. The two behavior switches that
// change what clients can observe (ResponseMessages, BanCheckEnabled) live
// here so the gate receives them as plain immutable values instead of reading
// ambient globals.
type Server struct {
	Addr string

	// Backing stores. Empty URLs select the in-memory implementations.
	PostgresURL string
	RedisURL    string

	// ResponseMessages controls whether rejected requests carry the joined
	// list of failure codes in the response body. Off in production so
	// probing clients learn nothing beyond the status code.
	ResponseMessages bool

	// BanCheckEnabled toggles ban enforcement in the identity resolver.
	BanCheckEnabled bool

	SessionTTL      time.Duration
	TokenSigningKey string

	// NotifyMinInterval is the floor between consecutive server error
	// reports; errors inside the window are collapsed into the next report.
	NotifyMinInterval time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("GRAVITY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("GRAVITY_TOKEN_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:              addr,
		PostgresURL:       os.Getenv("GRAVITY_POSTGRES_URL"),
		RedisURL:          os.Getenv("GRAVITY_REDIS_URL"),
		ResponseMessages:  os.Getenv("HTTP_RESPONSE_MESSAGES") == "true",
		BanCheckEnabled:   os.Getenv("BAN_CHECK_ENABLED") == "true",
		SessionTTL:        durationFromEnv("GRAVITY_SESSION_TTL_SEC", 24*time.Hour),
		TokenSigningKey:   signingKey,
		NotifyMinInterval: durationFromEnv("GRAVITY_NOTIFY_MIN_INTERVAL_SEC", time.Minute),
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
