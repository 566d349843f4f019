package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr           string
	InitialBalance float64
	AdvisorBaseURL string
	AdvisorAPIKey  string
	AdvisorModel   string
	AdvisorTimeout time.Duration
}

type CLIConfig struct {
	APIBaseURL string
}

// LoadAPIFromEnv reads server configuration. PORT (Heroku style) wins over
// JOGO_API_ADDR. The advisor keys are optional: without JOGO_ADVISOR_URL the
// advisory endpoints respond as unavailable.
func LoadAPIFromEnv() APIConfig {
	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("JOGO_API_ADDR", ":8080")
	}

	return APIConfig{
		Addr:           addr,
		InitialBalance: envFloatDefault("JOGO_INITIAL_BALANCE", 10000),
		AdvisorBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("JOGO_ADVISOR_URL")), "/"),
		AdvisorAPIKey:  strings.TrimSpace(firstEnv("JOGO_ADVISOR_API_KEY", "OPENAI_API_KEY")),
		AdvisorModel:   envDefault("JOGO_ADVISOR_MODEL", ""),
		AdvisorTimeout: envDurationDefault("JOGO_ADVISOR_TIMEOUT", 30*time.Second),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("JOGO_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
