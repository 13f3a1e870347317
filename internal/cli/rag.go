// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/go-a2a/kbcache/kb"
)

// NewRAGCommand creates the rag command group.
func NewRAGCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rag",
		Short: "Create, list, inspect and delete knowledge bases",
	}

	cmd.AddCommand(newRAGCreateCommand(rootOpts))
	cmd.AddCommand(newRAGListCommand(rootOpts))
	cmd.AddCommand(newRAGDeleteCommand(rootOpts))
	cmd.AddCommand(newRAGShowCommand(rootOpts))

	return cmd
}

// CreateResult is the JSON output of rag create.
type CreateResult struct {
	Name    string `json:"name"`
	CacheID string `json:"cache_id"`
	Files   int    `json:"files"`
}

func newRAGCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var name, path string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a knowledge base",
		Long: heredoc.Docf(`
			Create a knowledge base from a file or a directory.

			A directory is walked recursively for files with one of the
			extensions %s. Every file is uploaded, and once processed the
			files are bound to a cached content object recorded under --name.
			An existing knowledge base with the same name is replaced.
		`, strings.Join(kb.AllowedExtensions, ", ")),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := kb.DiscoverFiles(path)
			if err != nil {
				return fmt.Errorf("path %s not found: %w", path, err)
			}
			if len(files) == 0 {
				return fmt.Errorf("%w (looking for %s)", kb.ErrNoValidFiles, strings.Join(kb.AllowedExtensions, ", "))
			}

			inv, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			out := rootOpts.formatter(cmd)
			if !out.JSON() {
				out.Printf("Found %d files.", len(files))
			}

			cacheID, err := inv.service.Create(inv.ctx, name, files)
			if err != nil {
				return fmt.Errorf("error creating knowledge base: %w", err)
			}

			return out.Result(&CreateResult{Name: name, CacheID: cacheID, Files: len(files)}, func() {
				out.Printf("Knowledge base '%s' created successfully.", name)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the knowledge base")
	cmd.Flags().StringVar(&path, "path", "", "path to documents (file or directory)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

// ListResult is the JSON output of rag list.
type ListResult struct {
	Stores []string `json:"stores"`
}

func newRAGListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List available knowledge bases",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}

			stores := inv.service.List()
			out := rootOpts.formatter(cmd)
			return out.Result(&ListResult{Stores: stores}, func() {
				if len(stores) == 0 {
					out.Printf("No knowledge bases found.")
					return
				}
				out.Printf("Available Knowledge Bases:")
				for _, store := range stores {
					out.Printf("- %s", store)
				}
			})
		},
	}
}

// DeleteResult is the JSON output of rag delete.
type DeleteResult struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

func newRAGDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a knowledge base",
		Long: heredoc.Doc(`
			Delete a knowledge base.

			The remote cache is deleted on a best-effort basis; the local
			record is removed even when the remote deletion fails.
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			if err := inv.service.Delete(inv.ctx, name); err != nil {
				return fmt.Errorf("error deleting knowledge base: %w", err)
			}

			out := rootOpts.formatter(cmd)
			return out.Result(&DeleteResult{Name: name, Deleted: true}, func() {
				out.Printf("Knowledge base '%s' deleted.", name)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the knowledge base to delete")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRAGShowCommand(rootOpts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Show a knowledge base and the state of its cache",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			info, err := inv.service.Describe(inv.ctx, name)
			if err != nil {
				return err
			}
			inv.logger.DebugContext(inv.ctx, "Described knowledge base",
				slog.String("store", name),
				slog.Bool("live", info.Live),
			)

			out := rootOpts.formatter(cmd)
			return out.Result(info, func() {
				out.Printf("Name:       %s", info.Name)
				out.Printf("Cache:      %s", info.CacheID)
				out.Printf("Model:      %s", info.Model)
				out.Printf("Created:    %s", info.CreatedAt.Format(time.RFC3339))
				out.Printf("Files:      %d", len(info.FileIDs))
				if info.Live {
					out.Printf("Status:     live, expires %s", info.ExpireTime.Format(time.RFC3339))
				} else {
					out.Printf("Status:     unavailable, may need recreation")
				}
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the knowledge base")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
