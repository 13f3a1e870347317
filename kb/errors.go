// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreNotFound is matched by [*StoreNotFoundError].
	ErrStoreNotFound = errors.New("knowledge base not found")

	// ErrCacheUnavailable is matched by [*CacheUnavailableError].
	ErrCacheUnavailable = errors.New("cache unavailable, may need recreation")

	// ErrNoValidFiles is returned by [Service.Create] when no source file was given.
	ErrNoValidFiles = errors.New("no valid files provided")

	// ErrNoFilesUploaded is returned when every upload of a batch failed.
	ErrNoFilesUploaded = errors.New("no files were successfully uploaded")

	// ErrNoFilesActive is returned when no uploaded file reached the ACTIVE state.
	ErrNoFilesActive = errors.New("no files became active")

	// ErrEmptyName is returned for an empty knowledge base name.
	ErrEmptyName = errors.New("knowledge base name must not be empty")
)

// StoreNotFoundError is returned when a name is not present in the registry.
type StoreNotFoundError struct {
	Name string
}

func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("knowledge base %q not found", e.Name)
}

// Is reports whether target is [ErrStoreNotFound].
func (e *StoreNotFoundError) Is(target error) bool {
	return target == ErrStoreNotFound
}

// CacheUnavailableError is returned when the registry knows the name but the remote
// cache cannot be used anymore, typically because its TTL elapsed.
type CacheUnavailableError struct {
	Name    string
	CacheID string
	Err     error
}

func (e *CacheUnavailableError) Error() string {
	return fmt.Sprintf("cache %s for knowledge base %q unavailable, may need recreation: %v", e.CacheID, e.Name, e.Err)
}

func (e *CacheUnavailableError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrCacheUnavailable].
func (e *CacheUnavailableError) Is(target error) bool {
	return target == ErrCacheUnavailable
}

// CacheCreationError is returned when the provider refused to create the cache.
// Nothing is written to the registry in that case.
type CacheCreationError struct {
	Name string
	Err  error
}

func (e *CacheCreationError) Error() string {
	return fmt.Sprintf("failed to create cache for knowledge base %q: %v", e.Name, e.Err)
}

func (e *CacheCreationError) Unwrap() error { return e.Err }
