// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/go-a2a/kbcache/config"
	"github.com/go-a2a/kbcache/kb"
	"github.com/go-a2a/kbcache/pkg/logging"
	"github.com/go-a2a/kbcache/provider/providertest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances instantly on Sleep.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

var _ kb.Clock = (*fakeClock)(nil)

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		APIKey:            "test-key",
		Model:             "models/gemini-test",
		TTLSeconds:        3600,
		StoreFile:         filepath.Join(t.TempDir(), "rag_store.json"),
		PollInterval:      2 * time.Second,
		ActivationTimeout: 10 * time.Minute,
		LogLevel:          "info",
		LogFormat:         logging.FormatText,
	}
}

func newService(t *testing.T, cfg *config.Config, p *providertest.Provider) (*kb.Service, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: epoch}
	svc, err := kb.New(cfg, p, kb.WithClock(clk), kb.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("kb.New() error = %v", err)
	}
	return svc, clk
}

// writeFiles creates files named names under dir and returns their paths.
func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("content of "+name), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}
