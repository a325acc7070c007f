// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a PDF into a sibling _extracted.txt file. It runs
// the extractor, writes the assembled text atomically, optionally records
// the run in a YAML sidecar, and prints a preview of the result.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfextract/internal/extract"
	"github.com/pdiddy/pdfextract/pkg/types"
)

const (
	pdfSuffix      = ".pdf"
	textSuffix     = "_extracted.txt"
	metadataSuffix = "_extracted.yaml"
	separatorWidth = 80
)

// ErrInputNotFound reports that the PDF path does not reference a file.
var ErrInputNotFound = errors.New("input file not found")

// Options controls a single conversion.
type Options struct {
	Extract extract.Options
	Output  types.OutputConfig
}

// CheckInput verifies that path references an existing regular file.
func CheckInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}
	return nil
}

// ConvertFile extracts the text of the PDF at pdfPath with o and writes it
// to OutputPath(pdfPath). Progress, the output location and the preview are
// written to w. Nothing is written to disk unless extraction succeeds and
// yields text.
func ConvertFile(o extract.Opener, pdfPath string, opts Options, w io.Writer) (types.Extraction, extract.Result, error) {
	fmt.Fprintf(w, "Extracting text from: %s\n", pdfPath)
	fmt.Fprintln(w, strings.Repeat("=", separatorWidth))

	res, err := extract.Extract(o, pdfPath, opts.Extract, w)
	if err != nil {
		return types.Extraction{}, extract.Result{}, err
	}
	if res.Text == "" {
		return types.Extraction{}, res, fmt.Errorf("%s: %w in %d page(s)", pdfPath, extract.ErrNoText, res.PageCount)
	}

	outPath := OutputPath(pdfPath)
	if err := WriteOutput(outPath, res.Text); err != nil {
		return types.Extraction{}, res, err
	}

	rec := types.Extraction{
		Source:      pdfPath,
		Output:      outPath,
		Backend:     o.Name(),
		PageCount:   res.PageCount,
		Pages:       res.Pages(),
		Characters:  utf8.RuneCountInString(res.Text),
		ExtractedAt: time.Now().UTC(),
	}
	if opts.Output.Metadata {
		if err := writeMetadata(rec, MetadataPath(pdfPath)); err != nil {
			return rec, res, fmt.Errorf("writing metadata for %s: %w", pdfPath, err)
		}
	}

	n := opts.Output.PreviewChars
	if n <= 0 {
		n = types.DefaultPreviewChars
	}
	fmt.Fprintf(w, "\nExtracted text saved to: %s\n", outPath)
	fmt.Fprintf(w, "\nFirst %d characters:\n\n", n)
	fmt.Fprintln(w, Preview(res.Text, n))

	return rec, res, nil
}

// OutputPath derives the text file path from a PDF path by replacing a
// trailing .pdf (any case) with _extracted.txt. A path without that suffix
// gets _extracted.txt appended, so the input is never overwritten.
func OutputPath(pdfPath string) string {
	return trimPDF(pdfPath) + textSuffix
}

// MetadataPath derives the YAML sidecar path the same way as OutputPath.
func MetadataPath(pdfPath string) string {
	return trimPDF(pdfPath) + metadataSuffix
}

func trimPDF(p string) string {
	if strings.EqualFold(filepath.Ext(p), pdfSuffix) {
		return p[:len(p)-len(pdfSuffix)]
	}
	return p
}

// Preview returns at most the first n characters (runes) of text.
func Preview(text string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}

// WriteOutput writes text to path as UTF-8, replacing any existing file.
// It writes to a temp file in the same directory and renames it, so a
// failed write never leaves a partial file behind.
func WriteOutput(path, text string) error {
	return writeAtomic(path, []byte(text))
}

func writeAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".pdfextract-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes an Extraction record to a YAML file.
func writeMetadata(rec types.Extraction, path string) error {
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return writeAtomic(path, data)
}

// ReadMetadata reads an Extraction record from a YAML sidecar.
func ReadMetadata(path string) (types.Extraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Extraction{}, err
	}
	var rec types.Extraction
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return types.Extraction{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}
