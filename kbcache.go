// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package kbcache manages named knowledge bases backed by Gemini cached content,
// from the command line or as a Model Context Protocol tool server.
package kbcache

// Version is the version of kbcache.
var Version = "v0.1.0"
