// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package push

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

// BatchResult holds the outcome of a push run.
type BatchResult struct {
	Pushed  int
	Skipped int
	Failed  int
}

// Total returns the number of targets processed.
func (r BatchResult) Total() int {
	return r.Pushed + r.Skipped + r.Failed
}

// HasFailures reports whether any target failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Sync pushes each target into its mapped tab, one atomic batch per tab.
// Each document is fetched once. Targets without a mapping or tab are
// warned about and skipped; an unreadable local file fails only that
// target. A remote error aborts the run.
func Sync(ctx context.Context, svc gdocs.Service, reg *syncconfig.Registry, targets []string, w io.Writer) (BatchResult, error) {
	var result BatchResult
	parser := Parser{SiteURL: reg.SiteURL}

	for _, group := range reg.GroupByDoc(targets) {
		doc, err := svc.GetDocument(ctx, group.DocID)
		if err != nil {
			return result, err
		}
		for _, target := range group.Targets {
			filename := filepath.Base(target)
			tab, ok := resolveTab(doc, reg, filename, w)
			if !ok {
				result.Skipped++
				continue
			}

			raw, err := os.ReadFile(target)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", filename, err)
				result.Failed++
				continue
			}
			parsed := parser.ParseMarkdown(string(raw), filename)

			tabID := tab.TabProperties.TabId
			prefix, _ := reg.ContentStartFor(filename)
			reqs, _ := BuildRequests(parsed.Title, parsed.Blocks, tabID, gdocs.BodyEndIndex(tab), InsertOffset(tab, prefix))
			if len(reqs) == 0 {
				fmt.Fprintf(w, "%s → tab %s: nothing to send\n", filename, tabID)
				result.Pushed++
				continue
			}

			resp, err := svc.BatchUpdate(ctx, group.DocID, reqs)
			if err != nil {
				return result, err
			}
			fmt.Fprintf(w, "%s → tab %s: %d blocks, %d requests, rev %s…\n",
				filename, tabID, len(parsed.Blocks), len(reqs), shortRevision(resp))
			result.Pushed++
		}
	}
	fmt.Fprintf(w, "\nPush summary: %d pushed, %d skipped, %d failed (total: %d)\n",
		result.Pushed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

func resolveTab(doc *docs.Document, reg *syncconfig.Registry, filename string, w io.Writer) (*docs.Tab, bool) {
	tabID, ok := reg.TabFor(filename)
	if !ok {
		fmt.Fprintf(w, "doc-sync warning: %s: missing tab mapping\n", filename)
		return nil, false
	}
	tab := gdocs.FindTab(doc.Tabs, tabID)
	if tab == nil {
		fmt.Fprintf(w, "doc-sync warning: %s: mapped tab not found in Google Doc: %s\n", filename, tabID)
		return nil, false
	}
	return tab, true
}

func shortRevision(resp *docs.BatchUpdateDocumentResponse) string {
	if resp == nil || resp.WriteControl == nil || resp.WriteControl.RequiredRevisionId == "" {
		return "?"
	}
	rev := resp.WriteControl.RequiredRevisionId
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return rev
}
