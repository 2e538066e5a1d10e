// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic filesystem layer for storing
// rendered charts and data exports.
package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
)

// An FS stores files.
type FS interface {
	// NewWriter returns a Writer for a given file name.
	// When the Writer is closed, the file will be stored with the
	// given metadata.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer writes one file.
type Writer interface {
	io.Writer
	// Close finishes writing the file.
	// Close must be called for the file to be stored.
	io.Closer
	// CloseWithError aborts the write. Nothing is stored.
	CloseWithError(error) error
}

// WriteFile stores the output of write as the file name in fsys.
// Nothing is stored if write fails.
func WriteFile(ctx context.Context, fsys FS, name string, metadata map[string]string, write func(io.Writer) error) error {
	w, err := fsys.NewWriter(ctx, name, metadata)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}

// MemFS is an in-memory filesystem implementing the FS interface.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		content: make(map[string]*memFile),
	}
}

// NewWriter returns a Writer for a given file name. As a side effect,
// it associates the given metadata with the file.
func (fs *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (Writer, error) {
	meta := make(map[string]string)
	for k, v := range metadata {
		meta[k] = v
	}
	return &memFile{fs: fs, name: name, metadata: meta}, nil
}

// Files returns the names of the stored files, sorted.
func (fs *MemFS) Files() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var files []string
	for f := range fs.content {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Contents returns the contents and metadata of the stored file name.
func (fs *MemFS) Contents(name string) (content []byte, metadata map[string]string, ok bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f := fs.content[name]
	if f == nil {
		return nil, nil, false
	}
	return f.content.Bytes(), f.metadata, true
}

// memFile represents a file in a MemFS. While the file is being
// written, fs points to the filesystem. Close writes the file's
// content to fs and sets fs to nil.
type memFile struct {
	fs       *MemFS
	name     string
	metadata map[string]string
	content  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.fs == nil {
		return 0, errors.New("write on closed file")
	}
	return f.content.Write(p)
}

func (f *memFile) Close() error {
	if f.fs == nil {
		return errors.New("already closed")
	}
	fs := f.fs
	f.fs = nil
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.content[f.name] = f
	return nil
}

func (f *memFile) CloseWithError(error) error {
	f.fs = nil
	return nil
}
