package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	// AuthType selects the bound authentication strategy:
	// none | basic | session | session_exp | session_db
	AuthType string

	SessionName     string
	SessionDuration time.Duration

	// SessionStore selects the durable session-record backend for
	// session_db: postgres | redis
	SessionStore string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("APP_PORT", "8080"),

		AuthType: getenv("AUTH_TYPE", "session"),

		SessionName:     getenv("SESSION_NAME", "_my_session_id"),
		SessionDuration: sessionDuration(),

		SessionStore: getenv("SESSION_STORE", "postgres"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sessionDuration reads SESSION_DURATION in seconds. Anything unparsable
// disables expiry (zero), it never fails startup.
func sessionDuration() time.Duration {
	seconds, err := strconv.Atoi(os.Getenv("SESSION_DURATION"))
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
