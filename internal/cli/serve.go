// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/go-a2a/kbcache"
	"github.com/go-a2a/kbcache/mcpserver"
	"github.com/go-a2a/kbcache/pkg/logging"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve knowledge bases to MCP clients over stdio",
		Long: heredoc.Doc(`
			Serve the list_knowledge_bases and query_knowledge_base tools over
			the Model Context Protocol on standard input and output.

			The server starts even when the configuration is invalid; the
			tools then answer with an error explaining that the service is
			not initialized.
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var store mcpserver.Store

			inv, err := rootOpts.setup(cmd)
			logger := logging.FromContext(ctx)
			if err != nil {
				logger.WarnContext(ctx, "Failed to initialize knowledge base service", slog.String("error", err.Error()))
			} else {
				ctx, logger, store = inv.ctx, inv.logger, inv.service
			}

			srv := mcpserver.New(store,
				mcpserver.WithLogger(logger),
				mcpserver.WithVersion(kbcache.Version),
			)
			return srv.RunStdio(ctx)
		},
	}
}
