// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-a2a/kbcache/config"
	"github.com/go-a2a/kbcache/provider"
	"github.com/go-a2a/kbcache/registry"
)

// Service implements the knowledge base operations on top of a [provider.Provider]
// and a local [registry.Registry].
type Service struct {
	cfg      *config.Config
	provider provider.Provider
	registry *registry.Registry
	clock    Clock
	logger   *slog.Logger

	// mu serializes registry access within the process.
	mu sync.Mutex
}

// Option is a functional option for configuring a [Service].
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock replaces the clock driving the activation poll loop.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithRegistry uses reg instead of opening the registry at [config.Config.StoreFile].
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Service) {
		s.registry = reg
	}
}

// New creates a knowledge base service.
//
// Unless [WithRegistry] is given, the registry document at cfg.StoreFile is loaded;
// a missing document yields an empty registry.
func New(cfg *config.Config, p provider.Provider, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if p == nil {
		return nil, errors.New("provider cannot be nil")
	}

	s := &Service{
		cfg:      cfg,
		provider: p,
		clock:    SystemClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		reg, err := registry.Open(cfg.StoreFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open registry: %w", err)
		}
		s.registry = reg
	}

	return s, nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// RegistryPath returns the location of the registry document.
func (s *Service) RegistryPath() string {
	return s.registry.Path()
}

// record returns a copy of the registry entry for name.
func (s *Service) record(name string) (*registry.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, &StoreNotFoundError{Name: name}
		}
		return nil, err
	}
	return rec, nil
}
