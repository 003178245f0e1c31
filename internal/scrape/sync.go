// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docsync/internal/httputil"
	"github.com/pdiddy/docsync/internal/pull"
	"github.com/pdiddy/docsync/internal/syncconfig"
)

// Scraper fetches published documents.
type Scraper struct {
	Client    *http.Client
	UserAgent string
}

// Fetch downloads and parses the published document at docURL.
func (s *Scraper) Fetch(ctx context.Context, docURL string) (*Page, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	data, err := httputil.Get(ctx, client, docURL, s.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching published document: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Options controls a scrape run.
type Options struct {
	// DocURL overrides the configured published document URL.
	DocURL string
	// Dir is the directory the section files are written to.
	Dir string
	// DryRun prints the regenerated files instead of writing them.
	DryRun bool
}

// BatchResult holds the outcome of a scrape run.
type BatchResult struct {
	Written int
	Skipped int
	Failed  int
}

// Total returns the number of sections processed.
func (r BatchResult) Total() int {
	return r.Written + r.Skipped + r.Failed
}

// HasFailures reports whether any section failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Sync regenerates every section of the published document into its local
// file, keeping each file's existing front matter. A fetch error or a page
// without sections aborts the run; a local write error fails only that
// section.
func Sync(ctx context.Context, s *Scraper, reg *syncconfig.Registry, opts Options, w io.Writer) (BatchResult, error) {
	var result BatchResult
	docURL := opts.DocURL
	if docURL == "" {
		docURL = reg.Scrape.DocURL
	}
	if docURL == "" {
		return result, fmt.Errorf("no published document URL configured")
	}

	fmt.Fprintf(w, "Fetching %s\n", docURL)
	page, err := s.Fetch(ctx, docURL)
	if err != nil {
		return result, err
	}
	sections, err := page.Sections(reg.Scrape)
	if err != nil {
		return result, err
	}
	if len(sections) == 0 {
		return result, fmt.Errorf("no section markers found in %s", docURL)
	}

	for _, sec := range sections {
		md := page.Render(sec, reg.SiteURL)
		if md == "" {
			fmt.Fprintf(w, "doc-sync warning: %s: section %q is empty\n", sec.File, sec.Marker)
			result.Skipped++
			continue
		}

		path := filepath.Join(opts.Dir, sec.File)
		existing, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(w, "failed:  %s (%v)\n", sec.File, err)
			result.Failed++
			continue
		}
		out := pull.ExtractFrontMatter(string(existing)) + md

		if opts.DryRun {
			fmt.Fprintf(w, "==> %s (%s)\n%s\n", sec.File, sec.Marker, out)
			result.Written++
			continue
		}
		if err := pull.WriteFileAtomic(path, []byte(out)); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", sec.File, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "%s ← %s (%d lines)\n", sec.File, sec.Marker, strings.Count(out, "\n"))
		result.Written++
	}

	fmt.Fprintf(w, "\nScrape summary: %d written, %d skipped, %d failed (total: %d)\n",
		result.Written, result.Skipped, result.Failed, result.Total())
	return result, nil
}
