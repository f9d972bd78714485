package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr        string
	GinMode        string
	BackendBaseURL string
	BackendTimeout time.Duration
	SessionSecret  string
	SessionTTL     time.Duration
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":3000"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	backendURL := strings.TrimSpace(os.Getenv("BACKEND_BASE_URL"))
	if backendURL == "" {
		backendURL = "http://localhost:8080"
	}
	backendURL = strings.TrimRight(backendURL, "/")

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		secret = "busfront-dev-secret-change-me"
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        ginMode,
		BackendBaseURL: backendURL,
		BackendTimeout: secondsFromEnv("BACKEND_TIMEOUT_SECONDS", 30*time.Second),
		SessionSecret:  secret,
		SessionTTL:     hoursFromEnv("SESSION_TTL_HOURS", 24*time.Hour),
	}
}

func secondsFromEnv(key string, fallback time.Duration) time.Duration {
	n, ok := intFromEnv(key)
	if !ok {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func hoursFromEnv(key string, fallback time.Duration) time.Duration {
	n, ok := intFromEnv(key)
	if !ok {
		return fallback
	}
	return time.Duration(n) * time.Hour
}

func intFromEnv(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
