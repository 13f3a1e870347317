// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/go-a2a/kbcache/config"
	"github.com/go-a2a/kbcache/kb"
	"github.com/go-a2a/kbcache/pkg/logging"
)

// invocation is the per command state shared by the subcommands.
type invocation struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *slog.Logger
	service *kb.Service
}

// newLogger builds the invocation logger from cfg. Every record carries an op_id
// attribute identifying the invocation.
func (o *RootOptions) newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level := cfg.LogLevel
	if o.Verbose {
		level = slog.LevelDebug.String()
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.With(slog.String("op_id", uuid.NewString())), nil
}

// setup loads the configuration and builds the knowledge base service.
func (o *RootOptions) setup(cmd *cobra.Command) (*invocation, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := o.newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}
	ctx := logging.NewContext(cmd.Context(), logger)

	p, err := o.newProvider(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	svc, err := kb.New(cfg, p, kb.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "Invocation ready",
		slog.String("command", cmd.CommandPath()),
		slog.String("model", cfg.Model),
		slog.String("registry", svc.RegistryPath()),
	)

	return &invocation{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		service: svc,
	}, nil
}
