// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsync/internal/pull"
)

var pullCmd = &cobra.Command{
	Use:   "pull [files...]",
	Short: "Convert Google Docs tabs back into local Markdown",
	Long: `Pull fetches each file's tab and rewrites the file as Markdown. Front
matter and raw HTML blocks in the existing file are kept, and FAQ pages get
their question anchors rebuilt. With no arguments every configured file is
pulled.`,
	RunE: runPull,
}

func init() {
	pullCmd.Flags().Bool("dry-run", false, "print the converted files instead of writing them")

	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	targets, err := resolveTargets(reg, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := docsClient(ctx)
	if err != nil {
		return err
	}

	result, err := pull.Sync(ctx, client, reg, targets, pull.SyncOptions{DryRun: dryRun}, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to pull", result.Failed)
	}
	return nil
}
