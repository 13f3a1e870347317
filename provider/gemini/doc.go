// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package gemini implements [provider.Provider] with the Gemini Developer API through
// google.golang.org/genai.
//
// Files are uploaded with the Files service, caches are managed with the Caches service,
// and sessions use the Chats and Models services with GenerateContentConfig.CachedContent
// pointing at the knowledge base cache. API failures are translated into
// [*provider.APIError] so expired caches (HTTP 403 or 404) can be told apart from other
// failures.
//
// # Usage
//
//	p, err := gemini.New(ctx, cfg.APIKey, gemini.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	svc, err := kb.New(cfg, p)
package gemini
