// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package syncconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsync/pkg/types"
)

func validConfig() types.SyncConfig {
	return types.SyncConfig{
		DocID:   "doc-main",
		SiteURL: "https://example.org/",
		Files:   []string{"index.md", "faq.md", "1.md"},
		Tabs: map[string]string{
			"index.md": "t.index",
			"faq.md":   "t.faq",
			"1.md":     "t.one",
		},
		DocOverrides: map[string]string{"1.md": "doc-other"},
		ContentStart: map[string]string{"1.md": "Pack 1"},
		FAQFiles:     []string{"faq.md"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *types.SyncConfig)
		wantErr   string
		offending []string
	}{
		{
			name:   "valid config",
			mutate: func(c *types.SyncConfig) {},
		},
		{
			name: "tab mapped to unknown file",
			mutate: func(c *types.SyncConfig) {
				c.Tabs["ghost.md"] = "t.ghost"
			},
			wantErr:   "tabs mapped to unknown files: ghost.md",
			offending: []string{"ghost.md"},
		},
		{
			name: "file missing tab mapping",
			mutate: func(c *types.SyncConfig) {
				delete(c.Tabs, "faq.md")
			},
			wantErr:   "files missing tab mappings: faq.md",
			offending: []string{"faq.md"},
		},
		{
			name: "duplicate filename",
			mutate: func(c *types.SyncConfig) {
				c.Files = append(c.Files, "index.md")
			},
			wantErr:   "duplicate filenames in files: index.md",
			offending: []string{"index.md"},
		},
		{
			name: "content start references unknown file",
			mutate: func(c *types.SyncConfig) {
				c.ContentStart["9.md"] = "Pack 9"
			},
			wantErr:   "content_start references unknown files: 9.md",
			offending: []string{"9.md"},
		},
		{
			name: "doc override references unknown file",
			mutate: func(c *types.SyncConfig) {
				c.DocOverrides["tw-9.md"] = "doc-tw"
			},
			wantErr:   "doc_overrides references unknown files: tw-9.md",
			offending: []string{"tw-9.md"},
		},
		{
			name: "several problems reported together",
			mutate: func(c *types.SyncConfig) {
				c.Tabs["b.md"] = "t.b"
				c.Tabs["a.md"] = "t.a"
				delete(c.Tabs, "1.md")
			},
			wantErr:   "files missing tab mappings: 1.md; tabs mapped to unknown files: a.md, b.md",
			offending: []string{"1.md", "a.md", "b.md"},
		},
		{
			name: "missing doc id",
			mutate: func(c *types.SyncConfig) {
				c.DocID = ""
			},
			wantErr: "doc-sync config invalid",
		},
		{
			name: "site url must be a url",
			mutate: func(c *types.SyncConfig) {
				c.SiteURL = "not a url"
			},
			wantErr: "doc-sync config invalid",
		},
		{
			name: "no files",
			mutate: func(c *types.SyncConfig) {
				c.Files = nil
				c.Tabs = nil
				c.DocOverrides = nil
				c.ContentStart = nil
				c.FAQFiles = nil
			},
			wantErr: "doc-sync config invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := New(cfg).Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.offending != nil {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.offending, verr.Offending())
			}
		})
	}
}

func TestLookups(t *testing.T) {
	r := New(validConfig())
	require.NoError(t, r.Validate())

	assert.Equal(t, "https://example.org", r.SiteURL)
	assert.Equal(t, "doc-main", r.DocIDFor("index.md"))
	assert.Equal(t, "doc-other", r.DocIDFor("1.md"))

	tab, ok := r.TabFor("faq.md")
	assert.True(t, ok)
	assert.Equal(t, "t.faq", tab)
	_, ok = r.TabFor("nope.md")
	assert.False(t, ok)

	prefix, ok := r.ContentStartFor("1.md")
	assert.True(t, ok)
	assert.Equal(t, "Pack 1", prefix)
	_, ok = r.ContentStartFor("index.md")
	assert.False(t, ok)

	assert.True(t, r.IsFAQ("faq.md"))
	assert.False(t, r.IsFAQ("index.md"))
	assert.Equal(t, "index.md faq.md 1.md", r.ShellFiles())
	assert.Equal(t, "`index.md`, `faq.md`, `1.md`", r.ScopeList())
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "/faq/", PagePath("faq.md"))
	assert.Equal(t, "/tw-1/", PagePath("content/tw-1.md"))
}

func TestLoadDefault(t *testing.T) {
	r, err := LoadValidated("")
	require.NoError(t, err)

	assert.Len(t, r.Files, 18)
	tab, ok := r.TabFor("faq.md")
	assert.True(t, ok)
	assert.Equal(t, "t.jutu46j75do3", tab)
	assert.Equal(t, "1RPe4yOtWcixia8ludAU0DDLTMcbV1zSKP2isxD_ljIo", r.DocIDFor("tw-faq.md"))
	assert.Equal(t, "1qmurZps5LUyFhjbM1C6DXtWrZvWXDd3rjIXpWsAABO0", r.DocIDFor("faq.md"))
	prefix, _ := r.ContentStartFor("3.md")
	assert.Equal(t, "Pack 3", prefix)
	assert.Equal(t, "1.md", r.Scrape.Sections["ch1: attentiveness.md"])
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc-sync.yaml")
	content := `doc_id: abc
site_url: https://example.org
files: [a.md, b.md]
tabs:
  a.md: t.a
  b.md: t.b
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadValidated(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, r.Files)
	assert.Equal(t, map[string]string{"a.md": "t.a", "b.md": "t.b"}, r.Tabs)
}

func TestLoadFileInvalidMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc-sync.yaml")
	content := `doc_id: abc
site_url: https://example.org
files: [a.md]
tabs:
  a.md: t.a
  stray.md: t.s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadValidated(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"stray.md"}, verr.UnknownTabs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading sync config")
}

func TestGroupByDoc(t *testing.T) {
	r := &Registry{
		PrimaryDocID: "doc-main",
		DocOverrides: map[string]string{"tw.md": "doc-tw"},
	}
	groups := r.GroupByDoc([]string{"site/about.md", "tw.md", "faq.md"})
	assert.Equal(t, []DocGroup{
		{DocID: "doc-main", Targets: []string{"site/about.md", "faq.md"}},
		{DocID: "doc-tw", Targets: []string{"tw.md"}},
	}, groups)
}
