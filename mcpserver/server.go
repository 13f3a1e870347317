// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// ServerName identifies this server to MCP clients.
	ServerName = "kbcache"

	// DefaultStoreName is queried when the client omits store_name.
	DefaultStoreName = "antigravity-codebase"

	// notInitializedText is answered by every tool when no [Store] is available.
	notInitializedText = "Error: RAG service not initialized (check API key)"
)

// Store is the knowledge base backend the tools call into. [*kb.Service] implements it.
type Store interface {
	List() []string
	Query(ctx context.Context, name, question string) (string, error)
}

// Server hosts the knowledge base tools.
type Server struct {
	mcpServer *mcp.Server
	store     Store
	logger    *slog.Logger
	version   string
}

// Option is a functional option for configuring a [Server].
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported to clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// New creates a server backed by store.
//
// A nil store yields a server whose tools answer with a not-initialized error, so a
// client can still connect and learn why queries fail.
func New(store Store, opts ...Option) *Server {
	s := &Server{
		store:   store,
		logger:  slog.Default(),
		version: "devel",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: s.version}, &mcp.ServerOptions{
		Logger: s.logger,
	})
	registerTools(s.mcpServer, s)

	return s
}

// Run serves the tools on t until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.logger.InfoContext(ctx, "MCP server starting",
		slog.String("name", ServerName),
		slog.String("version", s.version),
		slog.Bool("initialized", s.store != nil),
	)
	if err := s.mcpServer.Run(ctx, t); err != nil {
		return fmt.Errorf("failed to run MCP server: %w", err)
	}
	return nil
}

// RunStdio serves the tools over standard input and output.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Connect starts a session on t and returns without waiting for it to end.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}
