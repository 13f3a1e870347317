// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound reports that a remote resource does not exist anymore.
//
// Implementations wrap it, or return an [*APIError] whose code maps to it.
var ErrNotFound = errors.New("remote resource not found")

// APIError is a provider failure carrying the HTTP status of the remote call.
type APIError struct {
	Op      string
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Code, e.Message)
}

// Is maps 404 and 403 to [ErrNotFound]. The Gemini API answers 403 for a cache that
// expired or belongs to nobody the key can see.
func (e *APIError) Is(target error) bool {
	if target != ErrNotFound {
		return false
	}
	return e.Code == http.StatusNotFound || e.Code == http.StatusForbidden
}

// IsNotFound reports whether err means the remote resource is gone.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
