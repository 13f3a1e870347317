// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package xmaps

import (
	"cmp"
	"maps"
	"slices"
)

// Contains reports whether key is present in m.
func Contains[Map ~map[K]V, K comparable, V any](m Map, key K) bool {
	_, ok := m[key]
	return ok
}

// SortedKeys returns the keys of m in ascending order.
//
// The result is never nil, so an empty map yields an empty slice that encodes as [].
func SortedKeys[Map ~map[K]V, K cmp.Ordered, V any](m Map) []K {
	keys := slices.Sorted(maps.Keys(m))
	if keys == nil {
		keys = []K{}
	}
	return keys
}
