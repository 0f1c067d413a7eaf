// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package progress renders transfer progress, animated on a terminal
// and plain-line elsewhere.
package progress
