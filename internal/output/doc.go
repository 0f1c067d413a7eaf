// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders bucket listings for commands in text, json,
// or yaml form, optionally narrowed by a gjson query path.
package output
