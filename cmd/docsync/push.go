// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsync/internal/gdocs"
	"github.com/pdiddy/docsync/internal/push"
)

var pushCmd = &cobra.Command{
	Use:   "push [files...]",
	Short: "Write local Markdown into its Google Docs tabs",
	Long: `Push replaces the managed content of each file's tab with the file's
Markdown. Chapter tabs keep everything above their content-start heading.
Each tab is updated in one atomic batch. With no arguments every configured
file is pushed.`,
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
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

	result, err := push.Sync(ctx, client, reg, targets, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to push", result.Failed)
	}
	return nil
}

// docsClient authenticates against the Docs API with the stored refresh
// token.
func docsClient(ctx context.Context) (*gdocs.Client, error) {
	creds, err := store.Google()
	if err != nil {
		return nil, err
	}
	return gdocs.NewClient(ctx, gdocs.TokenSourceOption(ctx, creds))
}
