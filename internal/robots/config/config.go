// Package config loads rr-robots configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/rr-robots/internal/robots/domain"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// CacheSize bounds the decision cache; 0 disables caching.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// UserAgent is the crawler product token decisions are made for.
	UserAgent string `koanf:"user_agent" validate:"required,agent_token"`

	// Manifest is an optional path to a crawl-check manifest file
	// (YAML, JSON or TOML). When set, the CLI runs in manifest mode.
	Manifest string `koanf:"manifest"`
}

// envLoader loads environment variables with the prefix "RRROBOTS_",
// lowercasing keys and removing the prefix. Swappable in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "RRROBOTS_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "RRROBOTS_")), value
		},
	}), nil)
}

// validAgentToken reports whether the field is a well-formed crawler
// product token ([a-zA-Z_-]+).
func validAgentToken(fl validator.FieldLevel) bool {
	return domain.IsValidUserAgent(fl.Field().String())
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Defaults via the structs provider.
	k.Load(structs.Provider(AppConfig{
		CacheSize: 1024,
		Env:       "prod",
		LogLevel:  "info",
		UserAgent: "rr-robots",
	}, "koanf"), nil)

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("agent_token", validAgentToken); err != nil {
		return nil, fmt.Errorf("error registering validator: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
