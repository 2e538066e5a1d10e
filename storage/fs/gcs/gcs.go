// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud Storage.
package gcs

import (
	"context"
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"github.com/benchgraph/benchgraph/storage/fs"
	"google.golang.org/api/option"
)

// impl is an fs.FS backed by Google Cloud Storage.
type impl struct {
	bucket *storage.BucketHandle
}

// NewFS constructs an FS that writes to the provided bucket.
func NewFS(ctx context.Context, bucketName string, opts ...option.ClientOption) (fs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName)}, nil
}

// NewWriter returns a Writer for the object name in the bucket.
// The object is created only when the Writer is closed.
func (fs *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := fs.bucket.Object(name).NewWriter(ctx)
	w.Metadata = metadata
	w.ContentType = mime.TypeByExtension(path.Ext(name))
	return &wrapper{w, cancel}, nil
}

// wrapper aborts uploads by canceling the Writer's context.
type wrapper struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *wrapper) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}

func (w *wrapper) CloseWithError(err error) error {
	w.cancel()
	w.Writer.Close()
	return err
}
