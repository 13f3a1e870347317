// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package kb manages named knowledge bases backed by remote cached content.
//
// A knowledge base is created by uploading local documents, waiting until the
// provider has finished processing them and binding the active files to a cached
// content object of one model. The local [registry.Registry] maps the human chosen
// name to the remote cache identifier so later invocations can open a chat
// session grounded in the cache, list the known names or delete them.
//
// The [Service] runs every operation sequentially. Blocking calls honor
// [context.Context] cancellation, including the sleep between activation polls
// which goes through an injectable [Clock].
package kb
