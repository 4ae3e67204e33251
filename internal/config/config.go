package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	NatsURL       string
	NatsToken     string
	DatabaseURL   string
	LogLevel      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	TurnTimeout   time.Duration
	MinConfidence float64
}

func Load() Config {
	return Config{
		Port:          envInt("FRONTDESK_PORT", 8650),
		NatsURL:       envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:     envStr("NATS_TOKEN", ""),
		DatabaseURL:   envStr("DATABASE_URL", ""),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		OpenAIAPIKey:  envStr("OPENAI_API_KEY", ""),
		OpenAIModel:   envStr("FRONTDESK_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: envStr("OPENAI_BASE_URL", ""),
		TurnTimeout:   time.Duration(envInt("FRONTDESK_TURN_TIMEOUT_SECONDS", 15)) * time.Second,
		MinConfidence: envFloat("FRONTDESK_MIN_CONFIDENCE", 0.5),
	}
}

func envStr(key, fallback string) string {
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
