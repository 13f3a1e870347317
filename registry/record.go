// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"time"
)

// Record is the local view of one knowledge base.
type Record struct {
	// CacheID is the remote cached content name, assigned by the provider.
	CacheID string `json:"name"`

	// Model is the model the cache is bound to. A cache is unusable with any other model.
	Model string `json:"model"`

	// CreatedAt is informational; expiry is tracked by the provider only.
	CreatedAt time.Time `json:"created_at,format:unix"`

	// FileIDs are the remote names of the uploaded source files, in upload order.
	FileIDs []string `json:"files"`
}
