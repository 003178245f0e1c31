// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsync/internal/syncconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the sync configuration",
	Long: `Config validates and prints the file-to-tab mapping. "files" and
"scope" print forms meant for shell scripts and prompts.`,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the sync configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		docs := len(reg.GroupByDoc(reg.Files))
		fmt.Fprintf(cmd.OutOrStdout(), "doc-sync config OK: %d files across %d document(s)\n", len(reg.Files), docs)
		return nil
	},
}

var configFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "Print the managed files, space-separated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(reg *syncconfig.Registry) {
			fmt.Fprintln(cmd.OutOrStdout(), reg.ShellFiles())
		})
	},
}

var configScopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Print the managed files as a backticked list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(reg *syncconfig.Registry) {
			fmt.Fprintln(cmd.OutOrStdout(), reg.ScopeList())
		})
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective sync configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := syncconfig.Load(syncConfigPath())
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(reg.Config())
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd, configFilesCmd, configScopeCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func withRegistry(fn func(*syncconfig.Registry)) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	fn(reg)
	return nil
}
