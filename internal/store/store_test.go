// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{
			name:     "simple join",
			segments: []string{"reports", "2026", "aug.csv"},
			want:     "reports/2026/aug.csv",
		},
		{
			name:     "windows separators normalized",
			segments: []string{`reports\2026`, "aug.csv"},
			want:     "reports/2026/aug.csv",
		},
		{
			name:     "leading slash stripped",
			segments: []string{"/reports", "aug.csv"},
			want:     "reports/aug.csv",
		},
		{
			name:     "empty directory",
			segments: []string{"", "aug.csv"},
			want:     "aug.csv",
		},
		{
			name:     "dot segments collapsed",
			segments: []string{"reports/./2026", "aug.csv"},
			want:     "reports/2026/aug.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.segments...))
		})
	}
}
