// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package stats implements the summary statistics the ls command
// reports over object sizes.
package stats

import (
	"errors"
	"sort"
)

// ErrNoSamples is returned when a statistic is requested over an empty
// sample set.
var ErrNoSamples = errors.New("stats: no samples")

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoSamples
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Median returns the middle value, averaging the two central values
// for even-length input. The input slice is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoSamples
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	}
	return sorted[n/2], nil
}

// Mode returns the most frequent values in ascending order. When every
// value is unique there is no mode and the result is empty.
func Mode(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrNoSamples
	}

	counts := make(map[float64]int, len(values))
	max := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > max {
			max = counts[v]
		}
	}
	if max == 1 {
		return nil, nil
	}

	var modes []float64
	for v, c := range counts {
		if c == max {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes, nil
}
