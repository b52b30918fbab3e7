package config

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/knadh/koanf/v2"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RRROBOTS_ENV",
		"RRROBOTS_LOG_LEVEL",
		"RRROBOTS_CACHE_SIZE",
		"RRROBOTS_USER_AGENT",
		"RRROBOTS_MANIFEST",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Env != "prod" {
		t.Errorf("expected Env=prod, got %q", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel=info, got %q", cfg.LogLevel)
	}
	if cfg.CacheSize != 1024 {
		t.Errorf("expected CacheSize=1024, got %d", cfg.CacheSize)
	}
	if cfg.UserAgent != "rr-robots" {
		t.Errorf("expected UserAgent=rr-robots, got %q", cfg.UserAgent)
	}
	if cfg.Manifest != "" {
		t.Errorf("expected empty Manifest, got %q", cfg.Manifest)
	}
}

func TestLoad_ValidOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RRROBOTS_ENV", "dev")
	t.Setenv("RRROBOTS_LOG_LEVEL", "debug")
	t.Setenv("RRROBOTS_CACHE_SIZE", "0")
	t.Setenv("RRROBOTS_USER_AGENT", "FooBot")
	t.Setenv("RRROBOTS_MANIFEST", "/tmp/checks.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Env != "dev" {
		t.Errorf("expected Env=dev, got %q", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %q", cfg.LogLevel)
	}
	if cfg.CacheSize != 0 {
		t.Errorf("expected CacheSize=0, got %d", cfg.CacheSize)
	}
	if cfg.UserAgent != "FooBot" {
		t.Errorf("expected UserAgent=FooBot, got %q", cfg.UserAgent)
	}
	if cfg.Manifest != "/tmp/checks.yaml" {
		t.Errorf("expected Manifest=/tmp/checks.yaml, got %q", cfg.Manifest)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "RRROBOTS_ENV", "staging"},
		{"bad log level", "RRROBOTS_LOG_LEVEL", "loud"},
		{"negative cache", "RRROBOTS_CACHE_SIZE", "-1"},
		{"agent with version", "RRROBOTS_USER_AGENT", "FooBot/1.2"},
		{"agent with space", "RRROBOTS_USER_AGENT", "Foo Bot"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected validation error for %s=%q", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("unexpected error kind: %v", err)
			}
		})
	}
}

func TestLoad_EnvLoaderFailure(t *testing.T) {
	orig := envLoader
	defer func() { envLoader = orig }()

	sentinel := errors.New("env exploded")
	envLoader = func(k *koanf.Koanf) error { return sentinel }

	_, err := Load()
	if err == nil || !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped env loader error, got %v", err)
	}
}
