// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small, valid PDF documents for tests. Each page
// string becomes one page set in Helvetica; newlines start a new text line
// and an empty string produces a page with an empty content stream.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Build returns the bytes of a PDF with one page per entry in pages.
func Build(pages []string) []byte {
	// Object layout: 1 catalog, 2 page tree, 3 font, then a page object and
	// its content stream for every page.
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		pageTree(len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, text := range pages {
		stream := contentStream(text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

// WriteFile builds a PDF from pages and writes it to dir/name, returning
// the full path.
func WriteFile(t testing.TB, dir, name string, pages []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pageTree(n int) string {
	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	return fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)
}

func contentStream(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 14 TL 72 720 Td")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString(" T*")
		}
		fmt.Fprintf(&b, " (%s) Tj", escape(line))
	}
	b.WriteString(" ET")
	return b.String()
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escape(s string) string { return escaper.Replace(s) }
