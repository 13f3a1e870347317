// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package provider_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-a2a/kbcache/provider"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: provider.ErrNotFound, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("get cache: %w", provider.ErrNotFound), want: true},
		{name: "api 404", err: &provider.APIError{Op: "get cache", Code: 404}, want: true},
		{name: "api 403", err: &provider.APIError{Op: "get cache", Code: 403}, want: true},
		{name: "wrapped api 404", err: fmt.Errorf("x: %w", &provider.APIError{Code: 404}), want: true},
		{name: "api 500", err: &provider.APIError{Op: "get cache", Code: 500}, want: false},
		{name: "other", err: errors.New("connection reset"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := provider.IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &provider.APIError{Op: "create cache", Code: 400, Status: "INVALID_ARGUMENT", Message: "model not supported"}
	want := "create cache: INVALID_ARGUMENT (400): model not supported"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &provider.APIError{Op: "get file", Code: 503, Message: "unavailable"}
	want = "get file: status 503: unavailable"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFileStateTerminal(t *testing.T) {
	tests := []struct {
		state provider.FileState
		want  bool
	}{
		{provider.FileStateUnspecified, false},
		{provider.FileStateProcessing, false},
		{provider.FileStateActive, true},
		{provider.FileStateFailed, true},
	}
	for _, tt := range tests {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}
