// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package kb

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// AllowedExtensions are the file extensions collected by [DiscoverFiles] when walking
// a directory.
var AllowedExtensions = []string{".pdf", ".md", ".txt"}

// DiscoverFiles expands path into the files to upload.
//
// A regular file is returned as is, whatever its extension. A directory is walked
// recursively and files whose lower-cased extension is in [AllowedExtensions] are
// returned in lexical order.
func DiscoverFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(p))) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	return files, nil
}
