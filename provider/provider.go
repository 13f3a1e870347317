// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"
	"time"
)

// FileState is the remote processing state of an uploaded file.
type FileState string

const (
	// FileStateUnspecified indicates the provider did not report a state.
	FileStateUnspecified FileState = "STATE_UNSPECIFIED"

	// FileStateProcessing indicates the file is still being processed.
	FileStateProcessing FileState = "PROCESSING"

	// FileStateActive indicates the file is ready to be referenced by a cache.
	FileStateActive FileState = "ACTIVE"

	// FileStateFailed indicates processing failed.
	FileStateFailed FileState = "FAILED"
)

// Terminal reports whether no further state transition is expected.
func (s FileState) Terminal() bool {
	switch s {
	case FileStateActive, FileStateFailed:
		return true
	default:
		return false
	}
}

// File is a handle to an uploaded file.
type File struct {
	// ID is the remote resource name, e.g. "files/abc123".
	ID string

	// URI is the location a cache or prompt refers to.
	URI string

	// MIMEType is the content type recorded by the provider.
	MIMEType string

	// DisplayName is the original base name of the local file.
	DisplayName string

	// State is the processing state at the time the handle was fetched.
	State FileState

	// Error carries the provider's failure message for [FileStateFailed].
	Error string
}

// Cache is a handle to a remote cached content object.
type Cache struct {
	// ID is the remote resource name, e.g. "cachedContents/abc123".
	ID string

	// Model is the model the cache is bound to.
	Model string

	// DisplayName is the user supplied name.
	DisplayName string

	// CreateTime is when the provider created the cache.
	CreateTime time.Time

	// ExpireTime is when the provider will evict the cache.
	ExpireTime time.Time
}

// CacheSpec describes a cached content object to create.
type CacheSpec struct {
	Model       string
	DisplayName string
	Files       []File
	TTL         time.Duration
}

// Provider is the narrow capability set the knowledge base service consumes from the
// remote generative AI provider.
type Provider interface {
	// UploadFile uploads the file at path. mimeType may be empty to let the provider infer it.
	UploadFile(ctx context.Context, path, mimeType string) (*File, error)

	// GetFile re-fetches the handle identified by id.
	GetFile(ctx context.Context, id string) (*File, error)

	// CreateCache creates a cached content object from active files.
	CreateCache(ctx context.Context, spec *CacheSpec) (*Cache, error)

	// GetCache fetches the live cache identified by id.
	GetCache(ctx context.Context, id string) (*Cache, error)

	// DeleteCache deletes the cache identified by id.
	DeleteCache(ctx context.Context, id string) error

	// NewSession returns a conversational handle grounded in cache.
	NewSession(ctx context.Context, cache *Cache) (Session, error)
}

// Session is a conversational handle bound to one cache.
type Session interface {
	// Generate answers a single stand-alone prompt without touching the chat history.
	Generate(ctx context.Context, text string) (string, error)

	// Send adds text to the conversation and returns the model's reply.
	Send(ctx context.Context, text string) (string, error)
}
