// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/go-a2a/kbcache"
)

// VersionResult is the JSON output of version.
type VersionResult struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kbcache version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			res := &VersionResult{Version: kbcache.Version, GoVersion: runtime.Version()}
			return out.Result(res, func() {
				out.Printf("kbcache %s (%s)", res.Version, res.GoVersion)
			})
		},
	}
}
