// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store defines the object store abstraction the transfer
// commands run against, with two implementations: store/s3 backed by
// an S3 bucket, and store/local backed by a directory tree for offline
// use. Keys are slash-separated regardless of host OS.
package store
