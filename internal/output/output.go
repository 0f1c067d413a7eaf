// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/s3ctl/s3ctl/internal/stats"
	"github.com/s3ctl/s3ctl/internal/store"
)

// SizeStats summarizes the size distribution of a listing.
type SizeStats struct {
	Count  int       `json:"count" yaml:"count"`
	Total  int64     `json:"total_bytes" yaml:"total_bytes"`
	Mean   float64   `json:"mean_bytes" yaml:"mean_bytes"`
	Median float64   `json:"median_bytes" yaml:"median_bytes"`
	Modes  []float64 `json:"mode_bytes,omitempty" yaml:"mode_bytes,omitempty"`
}

// Listing is the renderable result of an ls run.
type Listing struct {
	Bucket  string         `json:"bucket" yaml:"bucket"`
	Objects []store.Object `json:"objects" yaml:"objects"`
	Stats   *SizeStats     `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Summarize computes size statistics over objects. Returns nil for an
// empty listing.
func Summarize(objects []store.Object) *SizeStats {
	if len(objects) == 0 {
		return nil
	}

	sizes := make([]float64, 0, len(objects))
	var total int64
	for _, o := range objects {
		sizes = append(sizes, float64(o.Size))
		total += o.Size
	}

	mean, _ := stats.Mean(sizes)
	median, _ := stats.Median(sizes)
	modes, _ := stats.Mode(sizes)

	return &SizeStats{
		Count:  len(objects),
		Total:  total,
		Mean:   mean,
		Median: median,
		Modes:  modes,
	}
}

// Spit renders listing to w in the requested format (text, json, or
// yaml). A non-empty query applies a gjson path to the JSON document
// and prints the match instead, regardless of format.
func Spit(w io.Writer, listing Listing, format, query string) error {
	if w == nil {
		w = os.Stdout
	}

	if query != "" {
		doc, err := json.Marshal(listing)
		if err != nil {
			return fmt.Errorf("failed to marshal listing: %w", err)
		}
		result := gjson.GetBytes(doc, query)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing", query)
		}
		fmt.Fprintln(w, result.String())
		return nil
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case "yaml":
		data, err := yaml.Marshal(listing)
		if err != nil {
			return fmt.Errorf("failed to marshal listing: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "", "text":
		spitText(w, listing)
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

// spitText renders the listing as a borderless table, with humanized
// sizes, followed by the stats block when present.
func spitText(w io.Writer, listing Listing) {
	if len(listing.Objects) == 0 {
		fmt.Fprintf(w, "no objects in %s\n", listing.Bucket)
		return
	}

	headerStyle := lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)

	rows := make([][]string, 0, len(listing.Objects))
	for _, o := range listing.Objects {
		modified := "-"
		if !o.LastModified.IsZero() {
			modified = o.LastModified.UTC().Format(time.RFC3339)
		}
		etag := o.ETag
		if etag == "" {
			etag = "-"
		}
		rows = append(rows, []string{
			o.Key,
			humanize.Bytes(uint64(o.Size)),
			modified,
			etag,
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("KEY", "SIZE", "MODIFIED", "ETAG").
		BorderHeader(false).
		Rows(rows...)
	fmt.Fprintln(w, t)

	if s := listing.Stats; s != nil {
		fmt.Fprintf(w, "%d objects, %s total (mean %s, median %s)\n",
			s.Count,
			humanize.Bytes(uint64(s.Total)),
			humanize.Bytes(uint64(s.Mean)),
			humanize.Bytes(uint64(s.Median)),
		)
	}
}
