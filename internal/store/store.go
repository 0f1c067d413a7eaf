// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
)

// ErrNotExist reports that the named object (or the local source file
// of an upload) does not exist. Callers test for it with errors.Is.
var ErrNotExist = errors.New("object does not exist")

// Object is the metadata a store reports for one stored object.
type Object struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Store abstracts the object operations the transfer commands need.
// Every method takes a context and returns an explicit error; absence
// is always signaled with ErrNotExist, never a boolean.
type Store interface {
	// Upload copies localDir/filename to remoteDir/filename,
	// overwriting any existing object.
	Upload(ctx context.Context, localDir, remoteDir, filename string) error

	// Download copies remoteDir/filename to localDir/filename. An
	// existing destination file is left untouched when the transfer
	// fails partway.
	Download(ctx context.Context, remoteDir, localDir, filename string) error

	// Delete removes remoteDir/filename.
	Delete(ctx context.Context, remoteDir, filename string) error

	// Stat reports size, etag, and modification time for
	// remoteDir/filename.
	Stat(ctx context.Context, remoteDir, filename string) (Object, error)

	// List returns the objects under prefix, lexically ordered.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Bucket reports the active bucket name.
	Bucket() string
}

// Exists reports whether remoteDir/filename is present in s.
func Exists(ctx context.Context, s Store, remoteDir, filename string) (bool, error) {
	_, err := s.Stat(ctx, remoteDir, filename)
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Key joins key segments with forward slashes and strips any leading
// slash, normalizing Windows-style separators along the way.
func Key(segments ...string) string {
	for i, s := range segments {
		segments[i] = strings.ReplaceAll(s, `\`, "/")
	}
	return strings.TrimPrefix(path.Join(segments...), "/")
}
