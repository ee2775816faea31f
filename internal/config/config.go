package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	NatsURL     string
	NatsToken   string
	DatabaseURL string
	LogLevel    string
	LLMBaseURL  string
	LLMAPIKey   string
	LLMModel    string
	IntakeURL   string
	APIToken    string
}

func Load() Config {
	return Config{
		Port:        envInt("MIMIC_PORT", 8460),
		NatsURL:     envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:   envStr("NATS_TOKEN", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LLMBaseURL:  envStr("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:   envStr("LLM_API_KEY", ""),
		LLMModel:    envStr("MIMIC_MODEL", "gpt-4o"),
		IntakeURL:   envStr("INTAKE_URL", "http://intake:8470"),
		APIToken:    envStr("MIMIC_API_TOKEN", ""),
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
