// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListInput is the (empty) argument object of list_knowledge_bases.
type ListInput struct{}

// ListResult is the structured result of list_knowledge_bases.
type ListResult struct {
	Stores []string `json:"stores" jsonschema:"names of the available knowledge bases"`
}

// QueryInput is the argument object of query_knowledge_base.
type QueryInput struct {
	Query     string `json:"query" jsonschema:"the question or query to ask"`
	StoreName string `json:"store_name,omitempty" jsonschema:"the knowledge base to query (default: antigravity-codebase)"`
}

func registerTools(mcpServer *mcp.Server, s *Server) {
	mcp.AddTool(mcpServer, listTool(), s.listHandler())
	mcp.AddTool(mcpServer, queryTool(), s.queryHandler())
}

func listTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_knowledge_bases",
		Description: "List all available RAG knowledge bases.",
	}
}

func queryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "query_knowledge_base",
		Description: "Query a specific knowledge base using RAG.",
	}
}

func (s *Server) listHandler() mcp.ToolHandlerFor[ListInput, ListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListResult, error) {
		if s.store == nil {
			return errorResult(notInitializedText), ListResult{Stores: []string{}}, nil
		}

		stores := s.store.List()
		if stores == nil {
			stores = []string{}
		}
		s.logger.DebugContext(ctx, "Listed knowledge bases", slog.Int("count", len(stores)))
		return nil, ListResult{Stores: stores}, nil
	}
}

func (s *Server) queryHandler() mcp.ToolHandlerFor[QueryInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, any, error) {
		if s.store == nil {
			return errorResult(notInitializedText), nil, nil
		}

		store := input.StoreName
		if store == "" {
			store = DefaultStoreName
		}

		answer, err := s.store.Query(ctx, store, input.Query)
		if err != nil {
			s.logger.WarnContext(ctx, "Query failed",
				slog.String("store", store),
				slog.String("error", err.Error()),
			)
			return errorResult("Error querying knowledge base: " + err.Error()), nil, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: answer}},
		}, nil, nil
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
