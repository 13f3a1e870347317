// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry implements the local, durable mapping from knowledge base names to the
// remote cached content that backs them.
//
// # Document Format
//
// The registry is a single JSON object keyed by store name:
//
//	{
//	  "kb1": {
//	    "name": "cachedContents/abc123",
//	    "model": "models/gemini-1.5-flash-001",
//	    "created_at": 1729341234.5,
//	    "files": ["files/f1", "files/f2"]
//	  }
//	}
//
// "name" is the remote cache identifier and "created_at" is expressed in fractional unix
// seconds.
//
// # Persistence
//
// The whole document is loaded once by [Open] and rewritten in full after every mutation.
// Writes go through a temporary file and a rename in the same directory. There is no
// protection against two processes mutating the same document concurrently; the last
// writer wins.
package registry
