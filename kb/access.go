// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-a2a/kbcache/provider"
)

// Open returns a chat session grounded in the cache recorded under name.
//
// An unknown name yields a [*StoreNotFoundError]. A known name whose cache cannot be
// fetched or used yields a [*CacheUnavailableError].
func (s *Service) Open(ctx context.Context, name string) (provider.Session, error) {
	rec, err := s.record(name)
	if err != nil {
		return nil, err
	}

	cache, err := s.provider.GetCache(ctx, rec.CacheID)
	if err != nil {
		s.logger.WarnContext(ctx, "Cache not reachable",
			slog.String("store", name),
			slog.String("cache", rec.CacheID),
			slog.String("error", err.Error()),
		)
		return nil, &CacheUnavailableError{Name: name, CacheID: rec.CacheID, Err: err}
	}

	sess, err := s.provider.NewSession(ctx, cache)
	if err != nil {
		return nil, &CacheUnavailableError{Name: name, CacheID: rec.CacheID, Err: err}
	}

	s.logger.DebugContext(ctx, "Opened session",
		slog.String("store", name),
		slog.String("cache", cache.ID),
		slog.String("model", cache.Model),
	)
	return sess, nil
}

// Query answers a single question against the knowledge base name.
func (s *Service) Query(ctx context.Context, name, question string) (string, error) {
	if question == "" {
		return "", errors.New("query must not be empty")
	}

	sess, err := s.Open(ctx, name)
	if err != nil {
		return "", err
	}
	return sess.Generate(ctx, question)
}
