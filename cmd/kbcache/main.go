// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command kbcache manages Gemini cached-content knowledge bases.
package main

import (
	"context"
	"os"

	"github.com/go-a2a/kbcache/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
