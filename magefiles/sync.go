//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Push writes every configured file into its Google Docs tab.
func Push() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "push")
}

// Pull rewrites every configured file from its Google Docs tab.
func Pull() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "pull")
}

// Scrape regenerates chapter files from the published document.
func Scrape() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "scrape")
}
