// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/s3ctl/s3ctl/internal/logging"
	"github.com/s3ctl/s3ctl/internal/store"
)

// Client is the subset of the S3 API the store uses. *s3v2.Client
// satisfies it; tests substitute a fake.
type Client interface {
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3v2.HeadObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3v2.DeleteObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3v2.ListObjectsV2Input, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectsV2Output, error)
}

// Store is the S3-backed object store.
type Store struct {
	client Client
	bucket string
	lg     *logging.Logger
}

// NewStore returns a Store bound to bucket. A nil logger disables
// diagnostics.
func NewStore(client Client, bucket string, lg *logging.Logger) *Store {
	if lg == nil {
		lg = logging.Nop()
	}
	return &Store{
		client: client,
		bucket: bucket,
		lg:     lg.Named("store.s3"),
	}
}

// Bucket reports the active bucket name.
func (s *Store) Bucket() string { return s.bucket }

// Upload copies localDir/filename to remoteDir/filename in the bucket,
// overwriting any existing object.
func (s *Store) Upload(ctx context.Context, localDir, remoteDir, filename string) error {
	src := filepath.Join(localDir, filename)
	f, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			s.lg.Warnf("upload source %s does not exist", src)
			return fmt.Errorf("open %s: %w", src, store.ErrNotExist)
		}
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	key := store.Key(remoteDir, filename)
	_, err = s.client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
		Body:   f,
	})
	if err != nil {
		s.lg.Errorf("upload of %s failed: %v", key, err)
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	s.lg.Infof("uploaded %s to s3://%s/%s", src, s.bucket, key)
	return nil
}

// Download copies remoteDir/filename from the bucket into
// localDir/filename, creating localDir as needed. If a destination
// file already exists, its contents are restored when the transfer
// fails partway.
func (s *Store) Download(ctx context.Context, remoteDir, localDir, filename string) error {
	key := store.Key(remoteDir, filename)
	result, err := s.client.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			s.lg.Warnf("s3://%s/%s does not exist", s.bucket, key)
			return fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, store.ErrNotExist)
		}
		s.lg.Errorf("download of %s failed: %v", key, err)
		return fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer result.Body.Close()

	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", localDir, err)
	}
	dst := filepath.Join(localDir, filename)

	// Keep the previous contents around so a failed transfer doesn't
	// leave a truncated file behind.
	backup, backupErr := os.ReadFile(dst)

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err = io.Copy(f, result.Body); err != nil {
		f.Close()
		if backupErr == nil {
			if restoreErr := os.WriteFile(dst, backup, 0o644); restoreErr != nil {
				s.lg.Errorf("restore of %s failed: %v", dst, restoreErr)
			}
		}
		s.lg.Errorf("download of %s failed: %v", key, err)
		return fmt.Errorf("read s3://%s/%s: %w", s.bucket, key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	s.lg.Infof("downloaded s3://%s/%s to %s", s.bucket, key, dst)
	return nil
}

// Delete removes remoteDir/filename from the bucket. Deleting an
// absent object reports ErrNotExist.
func (s *Store) Delete(ctx context.Context, remoteDir, filename string) error {
	key := store.Key(remoteDir, filename)

	// DeleteObject succeeds for absent keys, so probe first to give
	// callers a truthful answer on unversioned buckets.
	if _, err := s.Stat(ctx, remoteDir, filename); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3v2.DeleteObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		s.lg.Errorf("delete of %s failed: %v", key, err)
		return fmt.Errorf("delete s3://%s/%s: %w", s.bucket, key, err)
	}
	s.lg.Infof("deleted s3://%s/%s", s.bucket, key)
	return nil
}

// Stat reports metadata for remoteDir/filename.
func (s *Store) Stat(ctx context.Context, remoteDir, filename string) (store.Object, error) {
	key := store.Key(remoteDir, filename)
	head, err := s.client.HeadObject(ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return store.Object{}, fmt.Errorf("head s3://%s/%s: %w", s.bucket, key, store.ErrNotExist)
		}
		return store.Object{}, fmt.Errorf("head s3://%s/%s: %w", s.bucket, key, err)
	}

	obj := store.Object{Key: key}
	if head.ContentLength != nil {
		obj.Size = *head.ContentLength
	}
	if head.ETag != nil {
		// The API wraps etags in double quotes; strip them for
		// display and comparison.
		obj.ETag = strings.Trim(*head.ETag, `"`)
	}
	if head.LastModified != nil {
		obj.LastModified = *head.LastModified
	}
	return obj, nil
}

// List returns the objects under prefix, paginating as needed.
func (s *Store) List(ctx context.Context, prefix string) ([]store.Object, error) {
	var objects []store.Object

	in := &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(s.bucket),
	}
	if prefix != "" {
		in.Prefix = awsv2.String(store.Key(prefix))
	}
	for {
		page, err := s.client.ListObjectsV2(ctx, in)
		if err != nil {
			s.lg.Errorf("list failed: %v", err)
			return nil, fmt.Errorf("list s3://%s: %w", s.bucket, err)
		}
		for _, o := range page.Contents {
			obj := store.Object{Key: awsv2.ToString(o.Key)}
			if o.Size != nil {
				obj.Size = *o.Size
			}
			if o.ETag != nil {
				obj.ETag = strings.Trim(*o.ETag, `"`)
			}
			if o.LastModified != nil {
				obj.LastModified = *o.LastModified
			}
			objects = append(objects, obj)
		}
		if page.IsTruncated == nil || !*page.IsTruncated {
			break
		}
		in.ContinuationToken = page.NextContinuationToken
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	s.lg.Debugf("listed %d objects under %q", len(objects), prefix)
	return objects, nil
}

// isNotFound recognizes the service's absence errors across the
// HeadObject (NotFound) and GetObject (NoSuchKey) shapes.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
