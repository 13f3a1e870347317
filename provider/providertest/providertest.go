// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package providertest provides an in-memory [provider.Provider] for tests.
package providertest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-a2a/kbcache/provider"
)

// ReplyFunc produces the model answer for text sent to a session on cacheID.
type ReplyFunc func(cacheID, text string) (string, error)

type fileEntry struct {
	path   string
	file   provider.File
	states []provider.FileState
}

// Provider is a scriptable in-memory [provider.Provider].
//
// Uploaded files become ACTIVE immediately unless a state script was registered with
// [Provider.SetStates]. Provider is safe for concurrent use.
type Provider struct {
	mu sync.Mutex

	now func() time.Time

	uploadErrs     map[string]error
	getFileErrs    map[string]error
	scripts        map[string][]provider.FileState
	createCacheErr error
	getCacheErr    error
	deleteCacheErr error
	sessionErr     error
	reply          ReplyFunc

	files  map[string]*fileEntry
	caches map[string]*provider.Cache

	uploads      []string
	getFileCalls []string
	creates      []provider.CacheSpec
	deletes      []string
}

var _ provider.Provider = (*Provider)(nil)

// New returns an empty fake provider.
func New() *Provider {
	return &Provider{
		now:         time.Now,
		uploadErrs:  make(map[string]error),
		getFileErrs: make(map[string]error),
		scripts:     make(map[string][]provider.FileState),
		files:       make(map[string]*fileEntry),
		caches:      make(map[string]*provider.Cache),
		reply: func(cacheID, text string) (string, error) {
			return fmt.Sprintf("[%s] %s", cacheID, text), nil
		},
	}
}

// FailUpload makes uploads of path fail with err.
func (p *Provider) FailUpload(path string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploadErrs[path] = err
}

// FailGetFile makes every state refresh of the file uploaded from path fail with err.
func (p *Provider) FailGetFile(path string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getFileErrs[path] = err
}

// SetStates scripts the processing states of the file uploaded from path. The first state
// is returned by the upload itself, each following GetFile advances by one, and the last
// state repeats forever.
func (p *Provider) SetStates(path string, states ...provider.FileState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts[path] = slices.Clone(states)
}

// FailCreateCache makes CreateCache fail with err; nil restores success.
func (p *Provider) FailCreateCache(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createCacheErr = err
}

// FailGetCache makes GetCache fail with err; nil restores success.
func (p *Provider) FailGetCache(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.getCacheErr = err
}

// FailDeleteCache makes DeleteCache fail with err; nil restores success.
func (p *Provider) FailDeleteCache(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleteCacheErr = err
}

// FailNewSession makes NewSession fail with err; nil restores success.
func (p *Provider) FailNewSession(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessionErr = err
}

// SetReply replaces the function answering session prompts.
func (p *Provider) SetReply(fn ReplyFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reply = fn
}

// Expire drops the cache as if its TTL had elapsed.
func (p *Provider) Expire(cacheID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.caches, cacheID)
}

// Uploads returns the paths passed to UploadFile, in call order.
func (p *Provider) Uploads() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.uploads)
}

// GetFileCalls returns the file ids passed to GetFile, in call order.
func (p *Provider) GetFileCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.getFileCalls)
}

// CreateCalls returns every spec passed to CreateCache, in call order.
func (p *Provider) CreateCalls() []provider.CacheSpec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.creates)
}

// Deletes returns the cache ids passed to DeleteCache, in call order.
func (p *Provider) Deletes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.deletes)
}

// Caches returns the ids of the live caches.
func (p *Provider) Caches() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.caches))
	for id := range p.caches {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// UploadFile implements [provider.Provider].
func (p *Provider) UploadFile(ctx context.Context, path, mimeType string) (*provider.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.uploads = append(p.uploads, path)
	if err := p.uploadErrs[path]; err != nil {
		return nil, err
	}

	id := "files/" + uuid.NewString()
	entry := &fileEntry{
		path: path,
		file: provider.File{
			ID:          id,
			URI:         "https://generativelanguage.test/v1beta/" + id,
			MIMEType:    mimeType,
			DisplayName: filepath.Base(path),
			State:       provider.FileStateActive,
		},
		states: slices.Clone(p.scripts[path]),
	}
	entry.advance()
	p.files[id] = entry

	f := entry.file
	return &f, nil
}

// advance moves the entry to its next scripted state.
func (e *fileEntry) advance() {
	if len(e.states) == 0 {
		return
	}
	e.file.State = e.states[0]
	if e.file.State == provider.FileStateFailed {
		e.file.Error = "processing failed"
	}
	if len(e.states) > 1 {
		e.states = e.states[1:]
	}
}

// GetFile implements [provider.Provider].
func (p *Provider) GetFile(ctx context.Context, id string) (*provider.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.getFileCalls = append(p.getFileCalls, id)
	entry, ok := p.files[id]
	if !ok {
		return nil, &provider.APIError{Op: "get file", Code: 404, Status: "NOT_FOUND", Message: id}
	}
	if err := p.getFileErrs[entry.path]; err != nil {
		return nil, err
	}

	entry.advance()
	f := entry.file
	return &f, nil
}

// CreateCache implements [provider.Provider].
func (p *Provider) CreateCache(ctx context.Context, spec *provider.CacheSpec) (*provider.Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, errors.New("cache spec cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	recorded := *spec
	recorded.Files = slices.Clone(spec.Files)
	p.creates = append(p.creates, recorded)

	if p.createCacheErr != nil {
		return nil, p.createCacheErr
	}
	for _, f := range spec.Files {
		entry, ok := p.files[f.ID]
		if !ok || entry.file.State != provider.FileStateActive {
			return nil, &provider.APIError{Op: "create cached content", Code: 400, Status: "INVALID_ARGUMENT", Message: "file not active: " + f.ID}
		}
	}

	now := p.now()
	cache := &provider.Cache{
		ID:          "cachedContents/" + uuid.NewString(),
		Model:       spec.Model,
		DisplayName: spec.DisplayName,
		CreateTime:  now,
		ExpireTime:  now.Add(spec.TTL),
	}
	p.caches[cache.ID] = cache

	out := *cache
	return &out, nil
}

// GetCache implements [provider.Provider].
func (p *Provider) GetCache(ctx context.Context, id string) (*provider.Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.getCacheErr != nil {
		return nil, p.getCacheErr
	}
	cache, ok := p.caches[id]
	if !ok {
		return nil, &provider.APIError{Op: "get cached content", Code: 403, Status: "PERMISSION_DENIED", Message: "CachedContent not found (or permission denied)"}
	}
	out := *cache
	return &out, nil
}

// DeleteCache implements [provider.Provider].
func (p *Provider) DeleteCache(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.deletes = append(p.deletes, id)
	if p.deleteCacheErr != nil {
		return p.deleteCacheErr
	}
	if _, ok := p.caches[id]; !ok {
		return &provider.APIError{Op: "delete cached content", Code: 404, Status: "NOT_FOUND", Message: id}
	}
	delete(p.caches, id)
	return nil
}

// NewSession implements [provider.Provider].
func (p *Provider) NewSession(ctx context.Context, cache *provider.Cache) (provider.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cache == nil {
		return nil, errors.New("cache cannot be nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	return &Session{provider: p, cacheID: cache.ID}, nil
}

// Session is the fake conversational handle returned by [Provider.NewSession].
type Session struct {
	provider *Provider
	cacheID  string

	mu      sync.Mutex
	history []string
}

var _ provider.Session = (*Session)(nil)

// Generate implements [provider.Session].
func (s *Session) Generate(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.answer(text)
}

// Send implements [provider.Session] and records text in the history.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	reply, err := s.answer(text)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.history = append(s.history, text, reply)
	s.mu.Unlock()
	return reply, nil
}

// History returns the alternating user and model turns sent through Send.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

func (s *Session) answer(text string) (string, error) {
	s.provider.mu.Lock()
	reply := s.provider.reply
	_, live := s.provider.caches[s.cacheID]
	s.provider.mu.Unlock()

	if !live {
		return "", &provider.APIError{Op: "generate content", Code: 403, Status: "PERMISSION_DENIED", Message: "CachedContent not found"}
	}
	return reply(s.cacheID, text)
}
