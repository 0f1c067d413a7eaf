// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/s3ctl/s3ctl/internal/logging"
	"github.com/s3ctl/s3ctl/internal/store"
)

// Store mimics the S3 store against a directory tree, for working
// offline. The bucket is a top-level directory under the base dir, and
// transfers are file copies. A copy is skipped when source and
// destination MD5 checksums already match, the same shortcut S3 etag
// comparisons give.
type Store struct {
	basedir string
	bucket  string
	lg      *logging.Logger
}

// NewStore creates the bucket directory under basedir if needed.
func NewStore(basedir, bucket string, lg *logging.Logger) (*Store, error) {
	if lg == nil {
		lg = logging.Nop()
	}
	s := &Store{
		basedir: basedir,
		bucket:  bucket,
		lg:      lg.Named("store.local"),
	}
	if err := os.MkdirAll(s.root(), 0o755); err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}
	return s, nil
}

// Bucket reports the active bucket name.
func (s *Store) Bucket() string { return s.bucket }

func (s *Store) root() string {
	return filepath.Join(s.basedir, s.bucket)
}

func (s *Store) abs(key string) string {
	return filepath.Join(s.root(), filepath.FromSlash(key))
}

// Upload copies localDir/filename into the store, skipping the copy
// when checksums match.
func (s *Store) Upload(ctx context.Context, localDir, remoteDir, filename string) error {
	src := filepath.Join(localDir, filename)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("open %s: %w", src, store.ErrNotExist)
		}
		return fmt.Errorf("stat %s: %w", src, err)
	}

	key := store.Key(remoteDir, filename)
	dst := s.abs(key)
	if same, err := checksumsMatch(src, dst); err == nil && same {
		s.lg.Debugf("skipping %s, checksums match", key)
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		s.lg.Errorf("upload of %s failed: %v", key, err)
		return err
	}
	s.lg.Infof("uploaded %s to %s/%s", src, s.bucket, key)
	return ctx.Err()
}

// Download copies an object out of the store into localDir, skipping
// the copy when checksums match.
func (s *Store) Download(ctx context.Context, remoteDir, localDir, filename string) error {
	key := store.Key(remoteDir, filename)
	src := s.abs(key)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("open %s/%s: %w", s.bucket, key, store.ErrNotExist)
		}
		return fmt.Errorf("stat %s: %w", src, err)
	}

	dst := filepath.Join(localDir, filename)
	if same, err := checksumsMatch(src, dst); err == nil && same {
		s.lg.Debugf("skipping %s, checksums match", key)
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		s.lg.Errorf("download of %s failed: %v", key, err)
		return err
	}
	s.lg.Infof("downloaded %s/%s to %s", s.bucket, key, dst)
	return ctx.Err()
}

// Delete removes an object from the store.
func (s *Store) Delete(ctx context.Context, remoteDir, filename string) error {
	key := store.Key(remoteDir, filename)
	err := os.Remove(s.abs(key))
	if os.IsNotExist(err) {
		return fmt.Errorf("delete %s/%s: %w", s.bucket, key, store.ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", s.bucket, key, err)
	}
	s.lg.Infof("deleted %s/%s", s.bucket, key)
	return ctx.Err()
}

// Stat reports metadata for an object. The etag is the file's MD5, to
// match what S3 reports for single-part uploads.
func (s *Store) Stat(ctx context.Context, remoteDir, filename string) (store.Object, error) {
	key := store.Key(remoteDir, filename)
	info, err := os.Stat(s.abs(key))
	if os.IsNotExist(err) {
		return store.Object{}, fmt.Errorf("stat %s/%s: %w", s.bucket, key, store.ErrNotExist)
	}
	if err != nil {
		return store.Object{}, fmt.Errorf("stat %s/%s: %w", s.bucket, key, err)
	}

	sum, err := md5Checksum(s.abs(key))
	if err != nil {
		return store.Object{}, err
	}
	return store.Object{
		Key:          key,
		Size:         info.Size(),
		ETag:         sum,
		LastModified: info.ModTime(),
	}, ctx.Err()
}

// List walks the bucket directory and returns the objects under
// prefix, lexically ordered.
func (s *Store) List(ctx context.Context, prefix string) ([]store.Object, error) {
	var objects []store.Object
	prefix = store.Key(prefix)

	err := filepath.WalkDir(s.root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(s.root(), path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		sum, err := md5Checksum(path)
		if err != nil {
			return err
		}
		objects = append(objects, store.Object{
			Key:          key,
			Size:         info.Size(),
			ETag:         sum,
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.bucket, err)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	s.lg.Debugf("listed %d objects under %q", len(objects), prefix)
	return objects, ctx.Err()
}

// copyFile copies src to dst, creating dst's directory as needed.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}

// checksumsMatch reports whether both files exist with equal MD5 sums.
func checksumsMatch(a, b string) (bool, error) {
	sumA, err := md5Checksum(a)
	if err != nil {
		return false, err
	}
	sumB, err := md5Checksum(b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}

func md5Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New() //nolint:gosec
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
