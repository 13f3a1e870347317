// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the kbcache command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/go-a2a/kbcache/config"
	"github.com/go-a2a/kbcache/provider"
	"github.com/go-a2a/kbcache/provider/gemini"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	loadConfig  func() (*config.Config, error)
	newProvider ProviderFactory
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{formatText, formatJSON}

const (
	formatText = "text"
	formatJSON = "json"
)

// ProviderFactory builds the remote provider for a command invocation.
type ProviderFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (provider.Provider, error)

// Option customizes the command tree.
type Option func(*RootOptions)

// WithConfigLoader replaces [config.Load].
func WithConfigLoader(fn func() (*config.Config, error)) Option {
	return func(o *RootOptions) {
		o.loadConfig = fn
	}
}

// WithProviderFactory replaces the Gemini provider.
func WithProviderFactory(fn ProviderFactory) Option {
	return func(o *RootOptions) {
		o.newProvider = fn
	}
}

func geminiProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (provider.Provider, error) {
	return gemini.New(ctx, cfg.APIKey, gemini.WithLogger(logger))
}

// NewRootCommand creates the root command for the kbcache CLI.
func NewRootCommand(opts ...Option) *cobra.Command {
	rootOpts := &RootOptions{
		loadConfig:  config.Load,
		newProvider: geminiProvider,
	}
	for _, opt := range opts {
		opt(rootOpts)
	}

	cmd := &cobra.Command{
		Use:   "kbcache",
		Short: "Manage Gemini cached-content knowledge bases",
		Long: heredoc.Doc(`
			kbcache uploads local documents to the Gemini API, binds them to a
			cached content object and remembers it under a name of your choice.
			Chat with a knowledge base from the terminal or serve the knowledge
			bases to MCP clients.

			Configuration is read from the environment:
			  GEMINI_API_KEY          API key (GOOGLE_API_KEY is used as fallback)
			  GEMINI_MODEL_NAME       model caches are bound to
			  RAG_TTL                 cache lifetime in seconds
			  RAG_STORE_FILE          local registry document
			  RAG_POLL_INTERVAL       delay between file state checks
			  RAG_ACTIVATION_TIMEOUT  give up on a file still processing after this long
			  KBCACHE_LOG_LEVEL       debug, info, warn or error
			  KBCACHE_LOG_FORMAT      text or json
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, rootOpts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", rootOpts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&rootOpts.Format, "format", formatText, "output format (json|text)")

	cmd.AddCommand(NewRAGCommand(rootOpts))
	cmd.AddCommand(NewChatCommand(rootOpts))
	cmd.AddCommand(NewServeCommand(rootOpts))
	cmd.AddCommand(NewVersionCommand(rootOpts))

	return cmd
}
