// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values, so a logger configured once
// by the command line layer reaches the knowledge base service, the upload pipeline and the
// remote provider without being threaded through every signature.
//
// # Basic Usage
//
//	logger, err := logging.New(os.Stderr, "info", logging.FormatText)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger)
//
//	logging.FromContext(ctx).Info("uploading file", slog.String("path", path))
//
// # Default Behavior
//
// When no logger is found in the context, FromContext returns a text logger that writes to
// stderr with INFO level logging. Stdout stays reserved for command output and for the MCP
// stdio transport.
package logging
