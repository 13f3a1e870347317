// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-a2a/kbcache/provider"
)

// MIMEHint returns the content type to upload path with, or "" to let the provider
// infer it.
func MIMEHint(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".rst", ".csv", ".log":
		return "text/plain"
	case ".json":
		return "application/json"
	default:
		return ""
	}
}

// UploadResult is the outcome of a batch upload.
type UploadResult struct {
	// Uploaded holds every handle the provider accepted, in upload order.
	Uploaded []provider.File

	// Active holds the refreshed handles that reached [provider.FileStateActive].
	Active []provider.File
}

// FileIDs returns the remote names of every uploaded file.
func (r *UploadResult) FileIDs() []string {
	ids := make([]string, 0, len(r.Uploaded))
	for _, f := range r.Uploaded {
		ids = append(ids, f.ID)
	}
	return ids
}

// activationState is the per file state of the upload pipeline.
type activationState int

const (
	stateUploading activationState = iota
	stateProcessing
	stateActive
	stateFailed
)

func (s activationState) String() string {
	switch s {
	case stateUploading:
		return "uploading"
	case stateProcessing:
		return "processing"
	case stateActive:
		return "active"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("activationState(%d)", int(s))
	}
}

// stateOf maps a remote file state to the pipeline state.
func stateOf(s provider.FileState) activationState {
	switch s {
	case provider.FileStateActive:
		return stateActive
	case provider.FileStateFailed:
		return stateFailed
	default:
		return stateProcessing
	}
}

// Upload uploads paths one at a time and waits for each accepted file to finish
// remote processing.
//
// A missing path, a failed upload or a file that does not become active is logged
// and excluded; the batch continues. [ErrNoFilesUploaded] is returned when nothing
// was accepted and [ErrNoFilesActive] when nothing became active.
func (s *Service) Upload(ctx context.Context, paths []string) (*UploadResult, error) {
	res := &UploadResult{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := s.uploadFile(ctx, path)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			continue
		}
		res.Uploaded = append(res.Uploaded, *f)
	}
	if len(res.Uploaded) == 0 {
		return nil, ErrNoFilesUploaded
	}

	for _, f := range res.Uploaded {
		active, err := s.activate(ctx, &f)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.WarnContext(ctx, "File did not become active",
				slog.String("file", f.ID),
				slog.String("display_name", f.DisplayName),
				slog.String("error", err.Error()),
			)
			continue
		}
		res.Active = append(res.Active, *active)
	}
	if len(res.Active) == 0 {
		return nil, ErrNoFilesActive
	}

	s.logger.InfoContext(ctx, "Files ready",
		slog.Int("uploaded", len(res.Uploaded)),
		slog.Int("active", len(res.Active)),
	)
	return res, nil
}

func (s *Service) uploadFile(ctx context.Context, path string) (*provider.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	s.logger.InfoContext(ctx, "Uploading file", slog.String("path", path))

	f, err := s.provider.UploadFile(ctx, path, MIMEHint(path))
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if f == nil || f.ID == "" {
		return nil, errors.New("provider returned an empty file handle")
	}
	return f, nil
}

// activate drives f from processing to a terminal state. It returns the ACTIVE handle
// or an error describing why the file failed.
func (s *Service) activate(ctx context.Context, f *provider.File) (*provider.File, error) {
	start := s.clock.Now()
	current := f
	state := stateOf(current.State)

	for {
		switch state {
		case stateActive:
			return current, nil
		case stateFailed:
			if current.Error != "" {
				return nil, fmt.Errorf("processing failed: %s", current.Error)
			}
			return nil, fmt.Errorf("file settled in state %s", current.State)
		}

		if timeout := s.cfg.ActivationTimeout; timeout > 0 && s.clock.Now().Sub(start) >= timeout {
			return nil, fmt.Errorf("file still %s after %s", current.State, timeout)
		}

		s.logger.DebugContext(ctx, "Waiting for file processing",
			slog.String("file", current.ID),
			slog.String("state", string(current.State)),
		)
		if err := s.clock.Sleep(ctx, s.cfg.PollInterval); err != nil {
			return nil, err
		}

		next, err := s.provider.GetFile(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh file state: %w", err)
		}
		current = next
		state = stateOf(current.State)
	}
}
