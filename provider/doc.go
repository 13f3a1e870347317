// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package provider declares the remote capabilities the knowledge base service depends on:
// file upload and processing state, cached content lifecycle, and grounded conversation.
//
// The [Provider] interface is implemented over the Gemini API by package gemini and in
// memory by package providertest.
package provider
