package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/dagcheck/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	AllowedOrigins  []string
	RealtimeEnabled bool

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the built-in defaults, the lowest configuration layer.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8000",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    1 << 20,
		AllowedOrigins:  []string{"http://localhost:3000"},
		LogFormat:       "json",
		LogLevel:        "info",
	}
}

// ApplyModel overlays every value set in a loaded settings file onto cfg.
func (cfg *Config) ApplyModel(m *config.Model) error {
	if m == nil {
		return nil
	}
	if s := m.Server; s != nil {
		if s.ListenAddr != nil {
			cfg.ListenAddr = *s.ListenAddr
		}
		for _, d := range []struct {
			name   string
			raw    *string
			target *time.Duration
		}{
			{"read_timeout", s.ReadTimeout, &cfg.ReadTimeout},
			{"write_timeout", s.WriteTimeout, &cfg.WriteTimeout},
			{"shutdown_timeout", s.ShutdownTimeout, &cfg.ShutdownTimeout},
		} {
			if d.raw == nil {
				continue
			}
			parsed, err := time.ParseDuration(*d.raw)
			if err != nil {
				return fmt.Errorf("server.%s: %w", d.name, err)
			}
			*d.target = parsed
		}
		if s.MaxBodyBytes != nil {
			cfg.MaxBodyBytes = *s.MaxBodyBytes
		}
	}
	if c := m.CORS; c != nil {
		cfg.AllowedOrigins = append([]string(nil), c.AllowedOrigins...)
	}
	if lg := m.Log; lg != nil {
		if lg.Level != nil {
			cfg.LogLevel = *lg.Level
		}
		if lg.Format != nil {
			cfg.LogFormat = *lg.Format
		}
	}
	if r := m.Realtime; r != nil && r.Enabled != nil {
		cfg.RealtimeEnabled = *r.Enabled
	}
	return nil
}

// NewConfig validates cfg and returns a copy that is safe to hand to New.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ListenAddr == "" {
		return nil, errors.New("ListenAddr is a required configuration field and cannot be empty")
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MaxBodyBytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.ShutdownTimeout < 0 {
		return nil, errors.New("timeouts cannot be negative")
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, errors.New("at least one allowed origin must be configured")
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "" {
			return nil, errors.New("allowed origins cannot contain an empty value")
		}
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	cfg.AllowedOrigins = append([]string(nil), cfg.AllowedOrigins...)
	return &cfg, nil
}
