// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docsync CLI, which keeps the
// site's Markdown in step with its Google Docs tabs and produces narration
// audio from it.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsync/internal/secrets"
	"github.com/pdiddy/docsync/internal/syncconfig"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultSyncConfig is picked up from the working directory when
// --config is not given.
const defaultSyncConfig = "doc-sync.yaml"

// store resolves credentials loaded at startup.
var store = secrets.NewStore(nil)

// rootCmd is the base command for the docsync CLI.
var rootCmd = &cobra.Command{
	Use:   "docsync",
	Short: "Sync site Markdown with Google Docs tabs",
	Long: `docsync keeps the site's Markdown files and their Google Docs tabs in
step. push writes local files into their tabs, pull converts tabs back into
Markdown, and scrape regenerates files from the published document when the
API is unavailable. speak turns a page into narration audio.

The file-to-tab mapping is built in; a doc-sync.yaml in the working
directory (or --config) replaces it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		s, err := secrets.Load(viper.GetString("secrets-dir"))
		if err != nil {
			return err
		}
		store = secrets.NewStore(s)
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "sync config file (default: ./doc-sync.yaml, else built-in)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files")
}

func initConfig() {
	viper.SetEnvPrefix("DOCSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("secrets-dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

// syncConfigPath returns the mapping file to load, or "" for the built-in
// mapping.
func syncConfigPath() string {
	if p := viper.GetString("config"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultSyncConfig); err == nil {
		return defaultSyncConfig
	}
	return ""
}

// loadRegistry loads and validates the sync mapping.
func loadRegistry() (*syncconfig.Registry, error) {
	path := syncConfigPath()
	if path != "" {
		fmt.Fprintln(os.Stderr, "Using sync config:", path)
	}
	return syncconfig.LoadValidated(path)
}

// resolveTargets returns the files to sync: args, or every configured file
// when args is empty. Every target must exist before remote work starts.
func resolveTargets(reg *syncconfig.Registry, args []string) ([]string, error) {
	targets := args
	if len(targets) == 0 {
		targets = append([]string(nil), reg.Files...)
	}
	for _, t := range targets {
		if _, err := os.Stat(t); err != nil {
			return nil, fmt.Errorf("doc-sync error: missing source file: %s", t)
		}
	}
	return targets, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
