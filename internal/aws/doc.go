// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains AWS SDK helpers shared by the stores and commands
// that talk to S3: config loading with optional overrides and S3 client
// construction.
package aws
