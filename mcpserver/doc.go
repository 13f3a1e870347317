// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcpserver exposes knowledge bases as Model Context Protocol tools.
//
// Two tools are registered:
//
//   - list_knowledge_bases returns the known knowledge base names.
//   - query_knowledge_base answers a question against one knowledge base.
//
// Tool failures are reported as text content with IsError set, never as protocol
// errors, so an MCP client always receives a readable answer.
package mcpserver
