// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the tool that reads the text layer of a PDF.
type Backend string

const (
	// BackendNative reads PDFs in-process with github.com/ledongthuc/pdf.
	BackendNative Backend = "native"
	// BackendPdftotext shells out to the poppler pdfinfo and pdftotext binaries.
	BackendPdftotext Backend = "pdftotext"
)

// DefaultPreviewChars is the number of characters printed after a successful run.
const DefaultPreviewChars = 2000

// DefaultPDFPath is used when no path argument is given.
const DefaultPDFPath = "docs/Contrato_de_Fideicomiso_10045__1.pdf"

// ExtractionConfig holds settings for a single extraction run.
type ExtractionConfig struct {
	// Backend selects the text-layer reader: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// Password unlocks encrypted documents (native backend only).
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Normalize applies Unicode NFC normalization to each page's text.
	Normalize bool `json:"normalize" yaml:"normalize"`
}

// OutputConfig controls what a successful run writes next to the PDF.
type OutputConfig struct {
	// PreviewChars is the number of characters printed to the console (default 2000).
	PreviewChars int `json:"preview_chars" yaml:"preview_chars"`

	// Metadata enables the <base>_extracted.yaml sidecar.
	Metadata bool `json:"metadata" yaml:"metadata"`

	// IndexDB is an optional SQLite database that receives the extracted pages.
	IndexDB string `json:"index_db,omitempty" yaml:"index_db,omitempty"`
}
