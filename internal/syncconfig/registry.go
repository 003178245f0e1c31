// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package syncconfig is the registry of managed files and their remote
// tab/document mapping. A Registry is constructed once per invocation,
// validated before any network call, and passed to each stage.
package syncconfig

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/pdiddy/docsync/pkg/types"
)

// Registry maps local filenames to remote tabs.
type Registry struct {
	PrimaryDocID string
	SiteURL      string
	Files        []string
	Tabs         map[string]string
	DocOverrides map[string]string
	ContentStart map[string]string
	FAQFiles     []string
	Scrape       types.ScrapeConfig
}

// New builds a Registry from its on-disk shape. It does not validate.
func New(cfg types.SyncConfig) *Registry {
	return &Registry{
		PrimaryDocID: strings.TrimSpace(cfg.DocID),
		SiteURL:      strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/"),
		Files:        append([]string(nil), cfg.Files...),
		Tabs:         copyMap(cfg.Tabs),
		DocOverrides: copyMap(cfg.DocOverrides),
		ContentStart: copyMap(cfg.ContentStart),
		FAQFiles:     append([]string(nil), cfg.FAQFiles...),
		Scrape: types.ScrapeConfig{
			DocURL:       cfg.Scrape.DocURL,
			Sections:     copyMap(cfg.Scrape.Sections),
			StopPrefixes: append([]string(nil), cfg.Scrape.StopPrefixes...),
		},
	}
}

// ValidationError lists every inconsistency found in a Registry.
type ValidationError struct {
	Duplicates          []string
	MissingTabs         []string
	UnknownTabs         []string
	UnknownContentStart []string
	UnknownDocOverrides []string
	UnknownFAQFiles     []string
}

// Error renders the problems in the order they are checked.
func (e *ValidationError) Error() string {
	var details []string
	add := func(label string, names []string) {
		if len(names) > 0 {
			details = append(details, label+": "+strings.Join(names, ", "))
		}
	}
	add("duplicate filenames in files", e.Duplicates)
	add("files missing tab mappings", e.MissingTabs)
	add("tabs mapped to unknown files", e.UnknownTabs)
	add("content_start references unknown files", e.UnknownContentStart)
	add("doc_overrides references unknown files", e.UnknownDocOverrides)
	add("faq_files references unknown files", e.UnknownFAQFiles)
	return "doc-sync config invalid: " + strings.Join(details, "; ")
}

// Offending returns every filename named by the error, deduplicated and sorted.
func (e *ValidationError) Offending() []string {
	seen := make(map[string]bool)
	for _, group := range [][]string{e.Duplicates, e.MissingTabs, e.UnknownTabs, e.UnknownContentStart, e.UnknownDocOverrides, e.UnknownFAQFiles} {
		for _, n := range group {
			seen[n] = true
		}
	}
	return sortedKeys(seen)
}

func (e *ValidationError) empty() bool {
	return len(e.Offending()) == 0
}

// Validate checks the field rules and the mapping invariants: every
// managed file appears once and has exactly one tab, and no mapping
// references a file outside the managed set.
func (r *Registry) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.PrimaryDocID, validation.Required),
		validation.Field(&r.SiteURL, validation.Required, is.URL),
		validation.Field(&r.Files, validation.Required),
	); err != nil {
		return fmt.Errorf("doc-sync config invalid: %w", err)
	}
	if err := validation.Validate(r.Scrape.DocURL, is.URL); err != nil {
		return fmt.Errorf("doc-sync config invalid: scrape.doc_url: %w", err)
	}

	verr := &ValidationError{}
	managed := make(map[string]bool, len(r.Files))
	dups := make(map[string]bool)
	for _, f := range r.Files {
		if managed[f] {
			dups[f] = true
		}
		managed[f] = true
	}
	verr.Duplicates = sortedKeys(dups)

	for _, f := range r.Files {
		if strings.TrimSpace(r.Tabs[f]) == "" && !contains(verr.MissingTabs, f) {
			verr.MissingTabs = append(verr.MissingTabs, f)
		}
	}
	verr.UnknownTabs = unknownKeys(r.Tabs, managed)
	verr.UnknownContentStart = unknownKeys(r.ContentStart, managed)
	verr.UnknownDocOverrides = unknownKeys(r.DocOverrides, managed)
	for _, f := range r.FAQFiles {
		if !managed[f] {
			verr.UnknownFAQFiles = append(verr.UnknownFAQFiles, f)
		}
	}

	if verr.empty() {
		return nil
	}
	return verr
}

// DocIDFor returns the document that owns filename.
func (r *Registry) DocIDFor(filename string) string {
	if id, ok := r.DocOverrides[filename]; ok && id != "" {
		return id
	}
	return r.PrimaryDocID
}

// TabFor returns the tab mapped to filename.
func (r *Registry) TabFor(filename string) (string, bool) {
	id, ok := r.Tabs[filename]
	return id, ok && id != ""
}

// ContentStartFor returns the partial-sync heading prefix for filename.
func (r *Registry) ContentStartFor(filename string) (string, bool) {
	p, ok := r.ContentStart[filename]
	return p, ok && p != ""
}

// IsFAQ reports whether filename gets FAQ post-processing.
func (r *Registry) IsFAQ(filename string) bool {
	return contains(r.FAQFiles, filename)
}

// IsManaged reports whether filename is in the managed set.
func (r *Registry) IsManaged(filename string) bool {
	return contains(r.Files, filename)
}

// ShellFiles returns the managed files space-separated.
func (r *Registry) ShellFiles() string {
	return strings.Join(r.Files, " ")
}

// ScopeList returns the managed files as a comma-separated list of
// backticked names, for workflow message bodies.
func (r *Registry) ScopeList() string {
	quoted := make([]string, len(r.Files))
	for i, f := range r.Files {
		quoted[i] = "`" + f + "`"
	}
	return strings.Join(quoted, ", ")
}

// Config returns the on-disk shape of the registry.
func (r *Registry) Config() types.SyncConfig {
	return types.SyncConfig{
		DocID:        r.PrimaryDocID,
		SiteURL:      r.SiteURL,
		Files:        append([]string(nil), r.Files...),
		Tabs:         copyMap(r.Tabs),
		DocOverrides: copyMap(r.DocOverrides),
		ContentStart: copyMap(r.ContentStart),
		FAQFiles:     append([]string(nil), r.FAQFiles...),
		Scrape:       r.Scrape,
	}
}

// DocGroup is the set of targets that live in one document.
type DocGroup struct {
	DocID   string
	Targets []string
}

// GroupByDoc groups target paths by owning document, in first-seen order,
// so each document is fetched once.
func (r *Registry) GroupByDoc(targets []string) []DocGroup {
	var groups []DocGroup
	index := make(map[string]int)
	for _, t := range targets {
		id := r.DocIDFor(filepath.Base(t))
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, DocGroup{DocID: id})
		}
		groups[i].Targets = append(groups[i].Targets, t)
	}
	return groups
}

// PagePath derives the canonical page path from a filename stem:
// "faq.md" becomes "/faq/".
func PagePath(filename string) string {
	base := filepath.Base(filename)
	return "/" + strings.TrimSuffix(base, filepath.Ext(base)) + "/"
}

func unknownKeys(m map[string]string, managed map[string]bool) []string {
	unknown := make(map[string]bool)
	for k := range m {
		if !managed[k] {
			unknown[k] = true
		}
	}
	return sortedKeys(unknown)
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
