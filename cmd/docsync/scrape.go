// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsync/internal/scrape"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "docsync/0.1"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Regenerate Markdown from the published Google Doc",
	Long: `Scrape downloads the "Publish to web" HTML of the document and splits it
at its section marker lines (e.g. "ch1: attentiveness.md"). Each section is
converted to Markdown and written to its mapped file, keeping the file's
front matter. Use it when API credentials are unavailable.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("doc-url", "", "published document URL (default from sync config)")
	scrapeCmd.Flags().String("dir", ".", "directory the section files are written to")
	scrapeCmd.Flags().Bool("dry-run", false, "print the regenerated files instead of writing them")
	scrapeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	docURL, _ := cmd.Flags().GetString("doc-url")
	dir, _ := cmd.Flags().GetString("dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	s := &scrape.Scraper{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}
	result, err := scrape.Sync(cmd.Context(), s, reg, scrape.Options{
		DocURL: docURL,
		Dir:    dir,
		DryRun: dryRun,
	}, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d section(s) failed to write", result.Failed)
	}
	return nil
}
