package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if HUSTLE_CONFIG is set
//  3. env (prefix HUSTLE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("HUSTLE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: HUSTLE_ADDR, HUSTLE_RETENTION_HOURS, ...
	// Map env keys like HUSTLE_RETENTION_HOURS -> retention_hours,
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("HUSTLE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "hustle_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.RetentionHours <= 0 {
		return fmt.Errorf("%w: retention_hours must be positive", ErrInvalidConfig)
	}
	if cfg.MockLatencyMinMS < 0 || cfg.MockLatencyMaxMS < cfg.MockLatencyMinMS {
		return fmt.Errorf("%w: mock latency bounds are inverted", ErrInvalidConfig)
	}
	if cfg.MaxDirectiveChars <= 0 {
		return fmt.Errorf("%w: max_directive_chars must be positive", ErrInvalidConfig)
	}
	return nil
}
