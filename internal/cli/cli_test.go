// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/kbcache"
	"github.com/go-a2a/kbcache/config"
	"github.com/go-a2a/kbcache/internal/cli"
	"github.com/go-a2a/kbcache/kb"
	"github.com/go-a2a/kbcache/provider"
	"github.com/go-a2a/kbcache/provider/providertest"
)

type harness struct {
	t        *testing.T
	cfg      *config.Config
	provider *providertest.Provider
	cfgErr   error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t: t,
		cfg: &config.Config{
			APIKey:            "test-key",
			Model:             "models/gemini-test",
			TTLSeconds:        600,
			StoreFile:         filepath.Join(t.TempDir(), "rag_store.json"),
			PollInterval:      time.Millisecond,
			ActivationTimeout: time.Second,
			LogLevel:          "error",
			LogFormat:         "text",
		},
		provider: providertest.New(),
	}
}

// run executes one CLI invocation and returns its stdout and stderr.
func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()

	root := cli.NewRootCommand(
		cli.WithConfigLoader(func() (*config.Config, error) {
			if h.cfgErr != nil {
				return nil, h.cfgErr
			}
			cfg := *h.cfg
			return &cfg, nil
		}),
		cli.WithProviderFactory(func(context.Context, *config.Config, *slog.Logger) (provider.Provider, error) {
			return h.provider, nil
		}),
	)

	var stdout, stderr bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(h.t.Context())
	return stdout.String(), stderr.String(), err
}

func writeDocs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCommandPresence(t *testing.T) {
	cmd := cli.NewRootCommand()

	for _, path := range [][]string{
		{"rag", "create"},
		{"rag", "list"},
		{"rag", "delete"},
		{"rag", "show"},
		{"chat"},
		{"serve"},
		{"version"},
	} {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			if err != nil {
				t.Fatalf("Find(%v) error = %v", path, err)
			}
			if got, want := sub.Name(), path[len(path)-1]; got != want {
				t.Errorf("Name() = %q, want %q", got, want)
			}
		})
	}

	format := cmd.PersistentFlags().Lookup("format")
	if format == nil || format.DefValue != "text" {
		t.Errorf("--format flag = %+v, want default %q", format, "text")
	}
}

func TestInvalidFormat(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "rag", "list", "--format", "yaml")
	if err == nil || !strings.Contains(err.Error(), `invalid format "yaml"`) {
		t.Fatalf("run() error = %v, want invalid format", err)
	}
}

func TestConfigError(t *testing.T) {
	h := newHarness(t)
	h.cfgErr = config.ErrMissingAPIKey

	_, _, err := h.run("", "rag", "list")
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("run() error = %v, want %v", err, config.ErrMissingAPIKey)
	}
}

func TestRAGWorkflow(t *testing.T) {
	h := newHarness(t)
	dir := writeDocs(t, "a.txt", "guide/b.md", "main.go")

	stdout, _, err := h.run("", "rag", "create", "--name", "kb1", "--path", dir)
	if err != nil {
		t.Fatalf("rag create error = %v", err)
	}
	if want := "Found 2 files.\nKnowledge base 'kb1' created successfully.\n"; stdout != want {
		t.Errorf("rag create output = %q, want %q", stdout, want)
	}
	if got := len(h.provider.Uploads()); got != 2 {
		t.Errorf("uploads = %d, want 2", got)
	}

	stdout, _, err = h.run("", "rag", "list")
	if err != nil {
		t.Fatalf("rag list error = %v", err)
	}
	if want := "Available Knowledge Bases:\n- kb1\n"; stdout != want {
		t.Errorf("rag list output = %q, want %q", stdout, want)
	}

	stdout, _, err = h.run("", "rag", "list", "--format", "json")
	if err != nil {
		t.Fatalf("rag list --format json error = %v", err)
	}
	var list cli.ListResult
	if err := json.Unmarshal([]byte(stdout), &list); err != nil {
		t.Fatalf("unmarshal %q: %v", stdout, err)
	}
	if diff := cmp.Diff([]string{"kb1"}, list.Stores); diff != "" {
		t.Errorf("stores mismatch (-want +got):\n%s", diff)
	}

	stdout, _, err = h.run("", "rag", "show", "--name", "kb1", "--format", "json")
	if err != nil {
		t.Fatalf("rag show error = %v", err)
	}
	var info kb.StoreInfo
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("unmarshal %q: %v", stdout, err)
	}
	if info.Name != "kb1" || !info.Live || len(info.FileIDs) != 2 || info.Model != h.cfg.Model {
		t.Errorf("rag show = %+v", info)
	}

	stdout, _, err = h.run("", "rag", "show", "--name", "kb1")
	if err != nil {
		t.Fatalf("rag show error = %v", err)
	}
	if !strings.Contains(stdout, "Status:     live") {
		t.Errorf("rag show output = %q, want live status", stdout)
	}

	stdout, _, err = h.run("", "rag", "delete", "--name", "kb1")
	if err != nil {
		t.Fatalf("rag delete error = %v", err)
	}
	if want := "Knowledge base 'kb1' deleted.\n"; stdout != want {
		t.Errorf("rag delete output = %q, want %q", stdout, want)
	}

	stdout, _, err = h.run("", "rag", "list")
	if err != nil {
		t.Fatalf("rag list error = %v", err)
	}
	if want := "No knowledge bases found.\n"; stdout != want {
		t.Errorf("rag list output = %q, want %q", stdout, want)
	}
}

func TestRAGCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "missing path",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
		},
		{
			name:    "no matching files",
			path:    func(t *testing.T) string { return writeDocs(t, "main.go", "image.png") },
			wantErr: kb.ErrNoValidFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, _, err := h.run("", "rag", "create", "--name", "kb1", "--path", tt.path(t))
			if err == nil {
				t.Fatal("rag create succeeded")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("rag create error = %v, want %v", err, tt.wantErr)
			}
			if got := len(h.provider.Uploads()); got != 0 {
				t.Errorf("uploads = %d, want 0", got)
			}
		})
	}
}

func TestRAGCreateCacheFailure(t *testing.T) {
	h := newHarness(t)
	h.provider.FailCreateCache(errors.New("quota exceeded"))

	_, _, err := h.run("", "rag", "create", "--name", "kb1", "--path", writeDocs(t, "a.txt"))
	var creationErr *kb.CacheCreationError
	if !errors.As(err, &creationErr) {
		t.Fatalf("rag create error = %v, want *kb.CacheCreationError", err)
	}

	stdout, _, err := h.run("", "rag", "list")
	if err != nil {
		t.Fatal(err)
	}
	if want := "No knowledge bases found.\n"; stdout != want {
		t.Errorf("rag list output = %q, want %q", stdout, want)
	}
}

func TestRAGDeleteMissing(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run("", "rag", "delete", "--name", "missing")
	if !errors.Is(err, kb.ErrStoreNotFound) {
		t.Fatalf("rag delete error = %v, want %v", err, kb.ErrStoreNotFound)
	}
}

func TestChat(t *testing.T) {
	h := newHarness(t)
	if _, _, err := h.run("", "rag", "create", "--name", "docs", "--path", writeDocs(t, "a.md")); err != nil {
		t.Fatal(err)
	}
	cacheID := h.provider.Caches()[0]

	h.provider.SetReply(func(id, text string) (string, error) {
		if text == "fail" {
			return "", errors.New("rate limited")
		}
		return "[" + id + "] " + text, nil
	})

	tests := []struct {
		name       string
		stdin      string
		wantOut    []string
		notWantOut []string
		wantErrOut string
	}{
		{
			name:       "quit ends the loop",
			stdin:      "hello\n\nQUIT\nignored\n",
			wantOut:    []string{"Starting chat with store 'docs'.", "Gemini: [" + cacheID + "] hello"},
			notWantOut: []string{"ignored"},
		},
		{
			name:    "eof ends the loop",
			stdin:   "first\nsecond",
			wantOut: []string{"Gemini: [" + cacheID + "] first", "Gemini: [" + cacheID + "] second"},
		},
		{
			name:       "failed turn continues",
			stdin:      "fail\nafter\nexit\n",
			wantOut:    []string{"Gemini: [" + cacheID + "] after"},
			wantErrOut: "Error during chat: rate limited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := h.run(tt.stdin, "chat", "--store", "docs")
			if err != nil {
				t.Fatalf("chat error = %v", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout, want) {
					t.Errorf("chat output = %q, want it to contain %q", stdout, want)
				}
			}
			for _, notWant := range tt.notWantOut {
				if strings.Contains(stdout, notWant) {
					t.Errorf("chat output = %q, must not contain %q", stdout, notWant)
				}
			}
			if tt.wantErrOut != "" && !strings.Contains(stderr, tt.wantErrOut) {
				t.Errorf("chat stderr = %q, want it to contain %q", stderr, tt.wantErrOut)
			}
		})
	}
}

func TestChatErrors(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("", "chat", "--store", "missing")
	if !errors.Is(err, kb.ErrStoreNotFound) {
		t.Fatalf("chat error = %v, want %v", err, kb.ErrStoreNotFound)
	}

	if _, _, err := h.run("", "rag", "create", "--name", "docs", "--path", writeDocs(t, "a.md")); err != nil {
		t.Fatal(err)
	}
	h.provider.Expire(h.provider.Caches()[0])

	_, _, err = h.run("", "chat", "--store", "docs")
	if !errors.Is(err, kb.ErrCacheUnavailable) {
		t.Fatalf("chat error = %v, want %v", err, kb.ErrCacheUnavailable)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run("", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var got cli.VersionResult
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", stdout, err)
	}
	if got.Version != kbcache.Version {
		t.Errorf("version = %q, want %q", got.Version, kbcache.Version)
	}
}
