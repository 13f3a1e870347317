// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads kbcache settings from the process environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/go-a2a/kbcache/pkg/logging"
)

const (
	// EnvAPIKey is the environment variable holding the Gemini API key.
	EnvAPIKey = "GEMINI_API_KEY"

	// EnvGoogleAPIKey is consulted when [EnvAPIKey] is unset.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"

	// DefaultModel is the model caches are bound to unless GEMINI_MODEL_NAME is set.
	DefaultModel = "models/gemini-1.5-flash-001"

	// DefaultStoreFile is the registry document, relative to the working directory.
	DefaultStoreFile = "rag_store.json"

	// DefaultTTLSeconds is the cached content lifetime.
	DefaultTTLSeconds = 3600
)

// ErrMissingAPIKey is returned by [Config.Validate] when no credential is configured.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " environment variable not set")

// Config holds every setting the knowledge base service needs.
//
// Business logic never reads the environment itself; it receives a Config.
type Config struct {
	APIKey            string        `env:"GEMINI_API_KEY"`
	FallbackAPIKey    string        `env:"GOOGLE_API_KEY"`
	Model             string        `env:"GEMINI_MODEL_NAME"      envDefault:"models/gemini-1.5-flash-001"`
	TTLSeconds        int           `env:"RAG_TTL"                envDefault:"3600"`
	StoreFile         string        `env:"RAG_STORE_FILE"         envDefault:"rag_store.json"`
	PollInterval      time.Duration `env:"RAG_POLL_INTERVAL"      envDefault:"2s"`
	ActivationTimeout time.Duration `env:"RAG_ACTIVATION_TIMEOUT" envDefault:"10m"`
	LogLevel          string        `env:"KBCACHE_LOG_LEVEL"      envDefault:"info"`
	LogFormat         string        `env:"KBCACHE_LOG_FORMAT"     envDefault:"text"`
}

// Load parses the process environment into a [Config] and validates it.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom is like [Load] but reads from the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = cfg.FallbackAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// TTL returns the cache time-to-live as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model name must not be empty")
	}
	if c.TTLSeconds <= 0 {
		return fmt.Errorf("RAG_TTL must be greater than 0, got %d", c.TTLSeconds)
	}
	if strings.TrimSpace(c.StoreFile) == "" {
		return errors.New("RAG_STORE_FILE must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("RAG_POLL_INTERVAL must be greater than 0, got %s", c.PollInterval)
	}
	if c.ActivationTimeout < 0 {
		return fmt.Errorf("RAG_ACTIVATION_TIMEOUT must not be negative, got %s", c.ActivationTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("KBCACHE_LOG_FORMAT must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.LogFormat)
	}
	return nil
}
