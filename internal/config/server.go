package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `env:"ITAX_ADDR" envDefault:":8080"`
	AllowedOrigins []string      `env:"ITAX_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	RulesFile      string        `env:"ITAX_RULES_FILE"`
	ReadTimeout    time.Duration `env:"ITAX_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"ITAX_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout    time.Duration `env:"ITAX_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownGrace  time.Duration `env:"ITAX_SHUTDOWN_GRACE" envDefault:"30s"`
	MaxBodyBytes   int64         `env:"ITAX_MAX_BODY_BYTES" envDefault:"65536"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServerConfig reads ServerConfig from the environment
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.MaxBodyBytes <= 0 {
		return ServerConfig{}, fmt.Errorf("ITAX_MAX_BODY_BYTES must be positive")
	}
	return cfg, nil
}
