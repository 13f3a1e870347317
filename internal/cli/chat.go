// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-a2a/kbcache/provider"
)

// NewChatCommand creates the chat command.
func NewChatCommand(rootOpts *RootOptions) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:          "chat",
		Short:        "Chat with a knowledge base",
		Long:         "Start an interactive conversation grounded in a knowledge base. Type 'exit' or 'quit' to leave.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(inv.ctx, os.Interrupt)
			defer stop()

			sess, err := inv.service.Open(ctx, store)
			if err != nil {
				return err
			}
			return runChat(ctx, sess, store, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "name of the knowledge base to chat with")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}

// runChat reads one message per line from in until exit, quit, EOF or ctx is done.
// A failed turn is reported on errOut and the conversation continues.
func runChat(ctx context.Context, sess provider.Session, store string, in io.Reader, out, errOut io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintf(out, "Starting chat with store '%s'. Type 'exit' to quit.\n", store)
	for {
		fmt.Fprint(out, "You: ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nExiting chat.")
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			line = strings.TrimSpace(l)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, err := sess.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out, "\nExiting chat.")
				return nil
			}
			fmt.Fprintf(errOut, "Error during chat: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Gemini: %s\n", reply)
	}
}
