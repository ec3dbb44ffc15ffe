package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort     = "8000"
	defaultLogLevel = "info"
)

// ServerConfig aggregates runtime settings resolved from multiple sources.
// Precedence: CLI flags > Environment variables > Defaults
type ServerConfig struct {
	Port                 string        `validate:"required"`
	LogLevel             string        `validate:"oneof=debug info warn error"`
	ShutdownGracePeriod  time.Duration `validate:"gte=0"`
	ReadHeaderTimeout    time.Duration `validate:"gte=0"`
	WriteTimeout         time.Duration `validate:"gte=0"`
	IdleTimeout          time.Duration `validate:"gte=0"`
	EnableRequestLogging bool
	RateLimitRPS         float64 `validate:"gte=0"`
	RateLimitBurst       int     `validate:"gte=0"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	Port           *string
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// LoadServer resolves server settings with precedence:
// CLI flags > Environment variables > Defaults
func LoadServer(overrides *CLIOverrides) (ServerConfig, error) {
	cfg := defaultServerConfig()

	applyEnvConfig(&cfg)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}

	return cfg, nil
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:                 defaultPort,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
	}
}

func applyEnvConfig(cfg *ServerConfig) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	if raw := strings.TrimSpace(os.Getenv("REQUEST_LOGGING")); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			cfg.EnableRequestLogging = enabled
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

func applyCLIOverrides(cfg *ServerConfig, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*overrides.LogLevel)
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

func validateServerConfig(cfg ServerConfig) error {
	if err := getValidator().Struct(cfg); err != nil {
		return fmt.Errorf("invalid server settings: %w", err)
	}
	return nil
}
