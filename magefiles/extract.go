//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and runs it on pdfPath.
func Extract(pdfPath string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), pdfPath)
}
