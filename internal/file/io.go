// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package file

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// NewIO returns an IO writing to the given bucket.
func NewIO(storage *storage.Client, bucket string) *IO {
	return &IO{
		storage: storage,
		bucket:  bucket,
	}
}

// IO writes files to cloud storage.
type IO struct {
	storage *storage.Client
	bucket  string
}

// WriteFile writes data to path with the given content type, returning the
// public URL of the written object.
func (io *IO) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := io.storage.Bucket(io.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("file: writing file: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("file: closing writer: %w", err)
	}
	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", io.bucket, path)
	return url, nil
}
