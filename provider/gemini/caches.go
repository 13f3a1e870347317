// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/go-a2a/kbcache/provider"
)

// CreateCache implements [provider.Provider].
//
// Every file becomes one part of a single user content, in the given order.
func (p *Provider) CreateCache(ctx context.Context, spec *provider.CacheSpec) (*provider.Cache, error) {
	if spec == nil {
		return nil, errors.New("cache spec cannot be nil")
	}
	if spec.Model == "" {
		return nil, errors.New("model cannot be empty")
	}
	if len(spec.Files) == 0 {
		return nil, errors.New("at least one file is required")
	}
	if spec.TTL <= 0 {
		return nil, fmt.Errorf("TTL must be greater than 0")
	}

	parts := make([]*genai.Part, 0, len(spec.Files))
	for _, f := range spec.Files {
		parts = append(parts, genai.NewPartFromURI(f.URI, f.MIMEType))
	}

	p.logger.InfoContext(ctx, "Creating cached content",
		slog.String("model", spec.Model),
		slog.String("display_name", spec.DisplayName),
		slog.Int("files", len(spec.Files)),
		slog.Duration("ttl", spec.TTL),
	)

	cc, err := p.client.Caches.Create(ctx, spec.Model, &genai.CreateCachedContentConfig{
		DisplayName: spec.DisplayName,
		TTL:         spec.TTL,
		Contents: []*genai.Content{
			genai.NewContentFromParts(parts, genai.RoleUser),
		},
	})
	if err != nil {
		return nil, translateError("create cached content", err)
	}

	cache := convertCache(cc)
	if cache.Model == "" {
		cache.Model = spec.Model
	}

	p.logger.InfoContext(ctx, "Cached content created successfully",
		slog.String("cache_name", cache.ID),
		slog.Time("expire_time", cache.ExpireTime),
	)

	return cache, nil
}

// GetCache implements [provider.Provider].
func (p *Provider) GetCache(ctx context.Context, id string) (*provider.Cache, error) {
	if id == "" {
		return nil, errors.New("cache name cannot be empty")
	}

	cc, err := p.client.Caches.Get(ctx, id, nil)
	if err != nil {
		return nil, translateError("get cached content", err)
	}
	return convertCache(cc), nil
}

// DeleteCache implements [provider.Provider].
func (p *Provider) DeleteCache(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("cache name cannot be empty")
	}

	if _, err := p.client.Caches.Delete(ctx, id, nil); err != nil {
		return translateError("delete cached content", err)
	}

	p.logger.InfoContext(ctx, "Cached content deleted successfully",
		slog.String("cache_name", id),
	)
	return nil
}

func convertCache(cc *genai.CachedContent) *provider.Cache {
	if cc == nil {
		return &provider.Cache{}
	}
	return &provider.Cache{
		ID:          cc.Name,
		Model:       cc.Model,
		DisplayName: cc.DisplayName,
		CreateTime:  cc.CreateTime,
		ExpireTime:  cc.ExpireTime,
	}
}
