// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	deepcopy "github.com/tiendc/go-deepcopy"

	"github.com/go-a2a/kbcache/internal/pool"
	"github.com/go-a2a/kbcache/internal/xmaps"
)

// ErrNotFound is returned when a store name is not present in the registry.
var ErrNotFound = errors.New("store not found")

// Registry is the name to [Record] mapping persisted at a single path.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	path    string
	records map[string]*Record
}

// New returns an empty registry bound to path without touching the file system.
func New(path string) *Registry {
	return &Registry{
		path:    path,
		records: make(map[string]*Record),
	}
}

// Open returns a registry bound to path and loads its current content.
func Open(path string) (*Registry, error) {
	r := New(path)
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the location of the persisted document.
func (r *Registry) Path() string {
	return r.path
}

// Load replaces the in-memory mapping with the persisted document.
//
// A missing document yields an empty registry.
func (r *Registry) Load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.records = make(map[string]*Record)
			return nil
		}
		return fmt.Errorf("read registry %s: %w", r.path, err)
	}

	records := make(map[string]*Record)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("decode registry %s: %w", r.path, err)
		}
	}
	for name, rec := range records {
		if rec == nil {
			delete(records, name)
			continue
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
	}
	r.records = records
	return nil
}

// Save overwrites the persisted document with the full in-memory mapping.
func (r *Registry) Save() error {
	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	if err := json.MarshalWrite(buf, r.records,
		json.Deterministic(true),
		jsontext.WithIndent("  "),
	); err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	buf.WriteByte('\n')

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close registry: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod registry: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace registry %s: %w", r.path, err)
	}
	return nil
}

// List returns the store names in ascending order.
func (r *Registry) List() []string {
	return xmaps.SortedKeys(r.records)
}

// Len reports the number of stores.
func (r *Registry) Len() int {
	return len(r.records)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	return xmaps.Contains(r.records, name)
}

// Get returns a copy of the record stored under name.
func (r *Registry) Get(name string) (*Record, error) {
	rec, ok := r.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	out := &Record{}
	if err := deepcopy.Copy(out, rec); err != nil {
		return nil, fmt.Errorf("copy record %q: %w", name, err)
	}
	return out, nil
}

// Put stores rec under name, replacing any previous record, and saves the registry.
//
// If saving fails the previous state is restored in memory.
func (r *Registry) Put(name string, rec *Record) error {
	if name == "" {
		return errors.New("store name cannot be empty")
	}
	if rec == nil {
		return errors.New("record cannot be nil")
	}

	normalized := *rec
	normalized.CreatedAt = normalized.CreatedAt.UTC()

	stored := &Record{}
	if err := deepcopy.Copy(stored, &normalized); err != nil {
		return fmt.Errorf("copy record %q: %w", name, err)
	}

	prev, existed := r.records[name]
	r.records[name] = stored
	if err := r.Save(); err != nil {
		if existed {
			r.records[name] = prev
		} else {
			delete(r.records, name)
		}
		return err
	}
	return nil
}

// Remove deletes name and saves the registry.
//
// A missing name returns [ErrNotFound] and leaves the document untouched.
func (r *Registry) Remove(name string) error {
	prev, ok := r.records[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	delete(r.records, name)
	if err := r.Save(); err != nil {
		r.records[name] = prev
		return err
	}
	return nil
}
