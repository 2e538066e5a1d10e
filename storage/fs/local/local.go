// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface using local files.
package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/benchgraph/benchgraph/storage/fs"
)

// impl is an fs.FS backed by local disk.
type impl struct {
	root string
}

// NewFS constructs an FS that writes to the provided directory.
func NewFS(root string) fs.FS {
	return &impl{root}
}

// NewWriter creates a file under the root directory, creating
// parent directories as needed. The metadata is dropped.
func (fs *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	name = filepath.Join(fs.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(name), 0777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return nil, err
	}
	return &wrapper{f, name}, nil
}

// wrapper writes a temporary file that is renamed into place on
// Close, so a failed write never leaves a partial file behind.
type wrapper struct {
	*os.File
	name string
}

func (w *wrapper) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	if err := os.Chmod(w.File.Name(), 0644); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	return os.Rename(w.File.Name(), w.name)
}

// CloseWithError closes the file and discards it.
func (w *wrapper) CloseWithError(error) error {
	w.File.Close()
	return os.Remove(w.File.Name())
}
