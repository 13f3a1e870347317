// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gemini

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"path/filepath"

	"google.golang.org/genai"

	"github.com/go-a2a/kbcache/provider"
)

const defaultMIMEType = "application/octet-stream"

// UploadFile implements [provider.Provider].
//
// When mimeType is empty the type is inferred from the extension, falling back to
// application/octet-stream so the upload is never refused client side.
func (p *Provider) UploadFile(ctx context.Context, path, mimeType string) (*provider.File, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}
	if mimeType == "" {
		mimeType = defaultMIMEType
	}

	p.logger.DebugContext(ctx, "Uploading file",
		slog.String("path", path),
		slog.String("mime_type", mimeType),
	)

	f, err := p.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return nil, translateError("upload file", err)
	}
	return convertFile(f), nil
}

// GetFile implements [provider.Provider].
func (p *Provider) GetFile(ctx context.Context, id string) (*provider.File, error) {
	if id == "" {
		return nil, errors.New("file id cannot be empty")
	}

	f, err := p.client.Files.Get(ctx, id, nil)
	if err != nil {
		return nil, translateError("get file", err)
	}
	return convertFile(f), nil
}

func convertFile(f *genai.File) *provider.File {
	if f == nil {
		return nil
	}

	out := &provider.File{
		ID:          f.Name,
		URI:         f.URI,
		MIMEType:    f.MIMEType,
		DisplayName: f.DisplayName,
		State:       provider.FileState(f.State),
	}
	if out.State == "" {
		out.State = provider.FileStateUnspecified
	}
	if f.Error != nil {
		out.Error = f.Error.Message
	}
	return out
}
