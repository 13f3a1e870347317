// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-a2a/kbcache/provider"
	"github.com/go-a2a/kbcache/registry"
)

// List returns the known knowledge base names, sorted.
func (s *Service) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.List()
}

// Delete removes name from the registry after a best-effort deletion of its remote
// cache. A remote failure is logged and does not keep the local record.
func (s *Service) Delete(ctx context.Context, name string) error {
	rec, err := s.record(name)
	if err != nil {
		return err
	}

	if err := s.provider.DeleteCache(ctx, rec.CacheID); err != nil {
		if provider.IsNotFound(err) {
			s.logger.InfoContext(ctx, "Remote cache already gone",
				slog.String("store", name),
				slog.String("cache", rec.CacheID),
			)
		} else {
			s.logger.WarnContext(ctx, "Failed to delete remote cache, removing local record anyway",
				slog.String("store", name),
				slog.String("cache", rec.CacheID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.mu.Lock()
	err = s.registry.Remove(name)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return &StoreNotFoundError{Name: name}
		}
		return err
	}

	s.logger.InfoContext(ctx, "Knowledge base deleted", slog.String("store", name))
	return nil
}

// StoreInfo describes one knowledge base.
type StoreInfo struct {
	Name      string    `json:"name"`
	CacheID   string    `json:"cache_id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	FileIDs   []string  `json:"files"`

	// Live reports whether the remote cache could be fetched.
	Live bool `json:"live"`

	// DisplayName and ExpireTime are only set when Live is true.
	DisplayName string    `json:"display_name,omitempty"`
	ExpireTime  time.Time `json:"expire_time"`
}

// Describe returns the local record of name together with the state of its remote
// cache. An unreachable cache is reported with Live set to false.
func (s *Service) Describe(ctx context.Context, name string) (*StoreInfo, error) {
	rec, err := s.record(name)
	if err != nil {
		return nil, err
	}

	info := newStoreInfo(name, rec)
	cache, err := s.provider.GetCache(ctx, rec.CacheID)
	if err != nil {
		s.logger.DebugContext(ctx, "Cache not reachable",
			slog.String("store", name),
			slog.String("error", err.Error()),
		)
		return info, nil
	}

	info.Live = true
	info.DisplayName = cache.DisplayName
	info.ExpireTime = cache.ExpireTime
	return info, nil
}

func newStoreInfo(name string, rec *registry.Record) *StoreInfo {
	return &StoreInfo{
		Name:      name,
		CacheID:   rec.CacheID,
		Model:     rec.Model,
		CreatedAt: rec.CreatedAt,
		FileIDs:   rec.FileIDs,
	}
}
