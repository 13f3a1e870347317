// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"

	"github.com/go-a2a/kbcache/provider"
)

// Provider implements [provider.Provider] over the Gemini Developer API.
type Provider struct {
	client     *genai.Client
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

var _ provider.Provider = (*Provider)(nil)

// Option is a functional option for configuring the [Provider].
type Option func(*Provider)

// WithLogger sets a custom logger for the provider.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used for every API call.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = hc
	}
}

// WithBaseURL points the provider at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// New creates a [Provider] authenticated with apiKey.
func New(ctx context.Context, apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey is required")
	}

	p := &Provider{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.baseURL != "" {
		cc.HTTPOptions.BaseURL = p.baseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	p.client = client

	return p, nil
}

// NewSession implements [provider.Provider].
func (p *Provider) NewSession(ctx context.Context, cache *provider.Cache) (provider.Session, error) {
	if cache == nil || cache.ID == "" {
		return nil, errors.New("cache cannot be empty")
	}
	if cache.Model == "" {
		return nil, fmt.Errorf("cache %s has no model", cache.ID)
	}

	config := &genai.GenerateContentConfig{
		CachedContent: cache.ID,
	}
	chat, err := p.client.Chats.Create(ctx, cache.Model, config, nil)
	if err != nil {
		return nil, translateError("create chat", err)
	}

	return &session{
		models: p.client.Models,
		chat:   chat,
		model:  cache.Model,
		config: config,
	}, nil
}

// translateError converts genai API failures into [*provider.APIError] so callers can
// classify them with [provider.IsNotFound].
func translateError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &provider.APIError{
			Op:      op,
			Code:    apiErr.Code,
			Status:  apiErr.Status,
			Message: apiErr.Message,
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
