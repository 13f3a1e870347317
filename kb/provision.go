// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-a2a/kbcache/provider"
	"github.com/go-a2a/kbcache/registry"
)

// Create uploads paths, binds the active files to a new cached content object and
// records it under name. An existing name is overwritten.
//
// The registry is only written after the provider created the cache. The recorded
// file ids include uploads that never became active.
func (s *Service) Create(ctx context.Context, name string, paths []string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	if len(paths) == 0 {
		return "", ErrNoValidFiles
	}

	s.logger.InfoContext(ctx, "Creating knowledge base",
		slog.String("store", name),
		slog.Int("files", len(paths)),
	)

	res, err := s.Upload(ctx, paths)
	if err != nil {
		return "", err
	}

	cache, err := s.provider.CreateCache(ctx, &provider.CacheSpec{
		Model:       s.cfg.Model,
		DisplayName: name,
		Files:       res.Active,
		TTL:         s.cfg.TTL(),
	})
	if err != nil {
		return "", &CacheCreationError{Name: name, Err: err}
	}

	rec := &registry.Record{
		CacheID:   cache.ID,
		Model:     s.cfg.Model,
		CreatedAt: s.clock.Now(),
		FileIDs:   res.FileIDs(),
	}

	s.mu.Lock()
	err = s.registry.Put(name, rec)
	s.mu.Unlock()
	if err != nil {
		s.logger.WarnContext(ctx, "Cache created but not recorded",
			slog.String("store", name),
			slog.String("cache", cache.ID),
		)
		return "", fmt.Errorf("failed to record knowledge base %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "Knowledge base created",
		slog.String("store", name),
		slog.String("cache", cache.ID),
		slog.Time("expire_time", cache.ExpireTime),
	)
	return cache.ID, nil
}
