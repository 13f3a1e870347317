// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package mcpserver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/go-a2a/kbcache/config"
	"github.com/go-a2a/kbcache/kb"
	"github.com/go-a2a/kbcache/mcpserver"
	"github.com/go-a2a/kbcache/pkg/logging"
	"github.com/go-a2a/kbcache/provider/providertest"
)

// stubStore answers from fixed data.
type stubStore struct {
	stores   []string
	answers  map[string]string
	err      error
	lastName string
}

func (s *stubStore) List() []string { return s.stores }

func (s *stubStore) Query(_ context.Context, name, question string) (string, error) {
	s.lastName = name
	if s.err != nil {
		return "", s.err
	}
	return s.answers[name] + ": " + question, nil
}

func connect(t *testing.T, store mcpserver.Store) *mcp.ClientSession {
	t.Helper()
	ctx := t.Context()

	srv := mcpserver.New(store, mcpserver.WithLogger(logging.Discard()), mcpserver.WithVersion("v0.0.0-test"))
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, serverTransport)
	if err != nil {
		t.Fatalf("server Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	params := &mcp.CallToolParams{Name: name}
	if args != nil {
		params.Arguments = args
	}
	res, err := cs.CallTool(t.Context(), params)
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("CallTool(%s) returned %d content blocks, want 1", name, len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s) content = %T, want *mcp.TextContent", name, res.Content[0])
	}
	return text.Text, res.IsError
}

func TestListTools(t *testing.T) {
	cs := connect(t, &stubStore{})

	res, err := cs.ListTools(t.Context(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	if diff := cmp.Diff([]string{"list_knowledge_bases", "query_knowledge_base"}, names); diff != "" {
		t.Errorf("tools mismatch (-want +got):\n%s", diff)
	}
}

func TestListKnowledgeBases(t *testing.T) {
	tests := []struct {
		name   string
		stores []string
		want   []string
	}{
		{name: "several", stores: []string{"alpha", "beta"}, want: []string{"alpha", "beta"}},
		{name: "none", stores: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, &stubStore{stores: tt.stores})

			text, isError := callTool(t, cs, "list_knowledge_bases", nil)
			if isError {
				t.Fatalf("list_knowledge_bases returned an error: %s", text)
			}
			var got mcpserver.ListResult
			if err := json.Unmarshal([]byte(text), &got); err != nil {
				t.Fatalf("unmarshal %q: %v", text, err)
			}
			if diff := cmp.Diff(tt.want, got.Stores); diff != "" {
				t.Errorf("stores mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueryKnowledgeBase(t *testing.T) {
	tests := []struct {
		name        string
		store       *stubStore
		args        map[string]any
		want        string
		wantIsError bool
		wantStore   string
	}{
		{
			name:      "named store",
			store:     &stubStore{answers: map[string]string{"docs": "from docs"}},
			args:      map[string]any{"query": "what?", "store_name": "docs"},
			want:      "from docs: what?",
			wantStore: "docs",
		},
		{
			name:      "default store",
			store:     &stubStore{answers: map[string]string{mcpserver.DefaultStoreName: "default"}},
			args:      map[string]any{"query": "hi"},
			want:      "default: hi",
			wantStore: mcpserver.DefaultStoreName,
		},
		{
			name:        "backend failure",
			store:       &stubStore{err: errors.New("knowledge base \"x\" not found")},
			args:        map[string]any{"query": "hi", "store_name": "x"},
			want:        "Error querying knowledge base: knowledge base \"x\" not found",
			wantIsError: true,
			wantStore:   "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, tt.store)

			text, isError := callTool(t, cs, "query_knowledge_base", tt.args)
			if text != tt.want {
				t.Errorf("query_knowledge_base = %q, want %q", text, tt.want)
			}
			if isError != tt.wantIsError {
				t.Errorf("IsError = %t, want %t", isError, tt.wantIsError)
			}
			if tt.store.lastName != tt.wantStore {
				t.Errorf("queried store = %q, want %q", tt.store.lastName, tt.wantStore)
			}
		})
	}
}

func TestNotInitialized(t *testing.T) {
	cs := connect(t, nil)

	const want = "Error: RAG service not initialized (check API key)"
	for name, args := range map[string]map[string]any{
		"list_knowledge_bases": nil,
		"query_knowledge_base": {"query": "hi"},
	} {
		text, isError := callTool(t, cs, name, args)
		if text != want || !isError {
			t.Errorf("%s = (%q, %t), want (%q, true)", name, text, isError, want)
		}
	}
}

func TestToolsWithService(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		APIKey:            "test-key",
		Model:             "models/gemini-test",
		TTLSeconds:        60,
		StoreFile:         filepath.Join(dir, "rag_store.json"),
		PollInterval:      time.Millisecond,
		ActivationTimeout: time.Second,
		LogLevel:          "info",
		LogFormat:         logging.FormatText,
	}
	p := providertest.New()
	svc, err := kb.New(cfg, p, kb.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(src, []byte("# Guide"), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheID, err := svc.Create(t.Context(), "guide", []string{src})
	if err != nil {
		t.Fatal(err)
	}

	cs := connect(t, svc)

	text, isError := callTool(t, cs, "query_knowledge_base", map[string]any{"query": "summary", "store_name": "guide"})
	if isError || text != "["+cacheID+"] summary" {
		t.Errorf("query_knowledge_base = (%q, %t)", text, isError)
	}

	p.Expire(cacheID)
	text, isError = callTool(t, cs, "query_knowledge_base", map[string]any{"query": "summary", "store_name": "guide"})
	if !isError || !strings.HasPrefix(text, "Error querying knowledge base: ") || !strings.Contains(text, "may need recreation") {
		t.Errorf("query_knowledge_base on an expired cache = (%q, %t)", text, isError)
	}

	text, isError = callTool(t, cs, "query_knowledge_base", map[string]any{"query": "summary", "store_name": "missing"})
	if !isError || !strings.Contains(text, `knowledge base "missing" not found`) {
		t.Errorf("query_knowledge_base on a missing store = (%q, %t)", text, isError)
	}
}
