// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads the text layer of a PDF page by page and assembles
// the non-empty pages into one labeled text. Reading the PDF itself is
// delegated to a backend: the in-process native reader or the poppler
// command-line tools.
package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdfextract/pkg/types"
)

// Document is an open PDF whose pages can be read by 1-based index.
type Document interface {
	// NumPage returns the number of pages in the document.
	NumPage() int

	// PageText returns the text layer of page i. An empty string means the
	// page has no extractable text.
	PageText(i int) (string, error)

	// Close releases the underlying file or process resources.
	Close() error
}

// Opener opens documents with one backend.
type Opener interface {
	// Name returns the backend identifier.
	Name() types.Backend

	// Open opens the PDF at path. Errors are ErrCapabilityUnavailable or
	// a *ParseError.
	Open(path string) (Document, error)
}

// Options tunes how page text is post-processed.
type Options struct {
	// Normalize applies Unicode NFC normalization to each page.
	Normalize bool
}

// Result holds the assembled output of a successful extraction.
type Result struct {
	// Text is the assembled output; empty when no page yielded text.
	Text string

	// PageCount is the total number of pages in the document.
	PageCount int

	// Sections holds the pages that contributed text, ascending.
	Sections []Section
}

// Section is the text of one non-empty page.
type Section struct {
	Page int
	Text string
}

// Pages returns the page numbers that contributed a section.
func (r Result) Pages() []int {
	var pages []int
	for _, s := range r.Sections {
		pages = append(pages, s.Page)
	}
	return pages
}

// Extract opens the PDF at path with o, reads every page in order and
// returns the assembled output. It writes the page count announcement to w.
// The document is closed on every return path. Extract does not check that
// path exists and does not write any file.
func Extract(o Opener, path string, opts Options, w io.Writer) (Result, error) {
	doc, err := o.Open(path)
	if err != nil {
		return Result{}, asParseError(path, 0, err)
	}
	defer doc.Close()

	total, err := pageCount(doc)
	if err != nil {
		return Result{}, asParseError(path, 0, err)
	}
	fmt.Fprintf(w, "Total pages: %d\n\n", total)

	res := Result{PageCount: total}
	var b strings.Builder
	for i := 1; i <= total; i++ {
		text, err := pageText(doc, i)
		if err != nil {
			return Result{}, asParseError(path, i, err)
		}
		if opts.Normalize {
			text = norm.NFC.String(text)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		writeSection(&b, i, text)
		res.Sections = append(res.Sections, Section{Page: i, Text: text})
	}
	res.Text = b.String()
	return res, nil
}

// PageHeader returns the delimiter line that introduces page n.
func PageHeader(n int) string {
	return fmt.Sprintf("--- PAGE %d ---", n)
}

// writeSection appends one page section: a blank line, the delimiter, a
// blank line, the page text and a trailing blank line.
func writeSection(b *strings.Builder, n int, text string) {
	b.WriteString("\n")
	b.WriteString(PageHeader(n))
	b.WriteString("\n\n")
	b.WriteString(text)
	b.WriteString("\n\n")
}

// pageCount and pageText guard against backends that panic on malformed
// input; the panic becomes an ordinary error.
func pageCount(doc Document) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return doc.NumPage(), nil
}

func pageText(doc Document, i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return doc.PageText(i)
}
