// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pull

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	docs "google.golang.org/api/docs/v1"

	"github.com/pdiddy/docsync/internal/gdocs"
	"github.com/pdiddy/docsync/internal/syncconfig"
)

// Fetcher retrieves a document with its tab contents.
type Fetcher interface {
	GetDocument(ctx context.Context, docID string) (*docs.Document, error)
}

// SyncOptions controls a pull run.
type SyncOptions struct {
	// DryRun prints the converted files instead of writing them.
	DryRun bool
}

// BatchResult holds the outcome of a pull run.
type BatchResult struct {
	Pulled  int
	Skipped int
	Failed  int
}

// Total returns the number of targets processed.
func (r BatchResult) Total() int {
	return r.Pulled + r.Skipped + r.Failed
}

// HasFailures reports whether any target failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Sync pulls each target from its mapped tab. Each document is fetched
// once. Targets without a mapping or tab are warned about and skipped; a
// local read or write error fails only that target. A fetch error aborts
// the run.
func Sync(ctx context.Context, f Fetcher, reg *syncconfig.Registry, targets []string, opts SyncOptions, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, group := range reg.GroupByDoc(targets) {
		doc, err := f.GetDocument(ctx, group.DocID)
		if err != nil {
			return result, err
		}
		for _, target := range group.Targets {
			switch pullTarget(doc, reg, target, opts, w) {
			case statusPulled:
				result.Pulled++
			case statusSkipped:
				result.Skipped++
			default:
				result.Failed++
			}
		}
	}
	fmt.Fprintf(w, "\nPull summary: %d pulled, %d skipped, %d failed (total: %d)\n",
		result.Pulled, result.Skipped, result.Failed, result.Total())
	return result, nil
}

type status int

const (
	statusPulled status = iota
	statusSkipped
	statusFailed
)

func pullTarget(doc *docs.Document, reg *syncconfig.Registry, target string, opts SyncOptions, w io.Writer) status {
	filename := filepath.Base(target)
	tabID, ok := reg.TabFor(filename)
	if !ok {
		fmt.Fprintf(w, "doc-sync warning: %s: missing tab mapping\n", filename)
		return statusSkipped
	}
	tab := gdocs.FindTab(doc.Tabs, tabID)
	if tab == nil {
		fmt.Fprintf(w, "doc-sync warning: %s: mapped tab not found in Google Doc: %s\n", filename, tabID)
		return statusSkipped
	}

	contentStart, _ := reg.ContentStartFor(filename)
	md := TabToMarkdown(tab, Options{
		PagePath:     syncconfig.PagePath(filename),
		SiteURL:      reg.SiteURL,
		SkipFirstH1:  true,
		ContentStart: contentStart,
	})

	existing, err := os.ReadFile(target)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filename, err)
		return statusFailed
	}
	out := Assemble(string(existing), md, reg.IsFAQ(filename))

	if opts.DryRun {
		fmt.Fprintf(w, "==> %s (tab %s)\n%s\n", filename, tabID, out)
		return statusPulled
	}
	if err := WriteFileAtomic(target, []byte(out)); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", filename, err)
		return statusFailed
	}
	fmt.Fprintf(w, "%s ← tab %s\n", filename, tabID)
	return statusPulled
}

// WriteFileAtomic writes data to a temporary file beside path and renames
// it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		os.Chmod(tmp.Name(), info.Mode().Perm())
	} else {
		os.Chmod(tmp.Name(), 0o644)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
