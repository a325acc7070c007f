// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Extraction records the outcome of one successful extraction run. It is
// written as the optional YAML sidecar and stored in the page index.
type Extraction struct {
	// Source is the path of the PDF that was read.
	Source string `json:"source" yaml:"source"`

	// Output is the path of the _extracted.txt file.
	Output string `json:"output" yaml:"output"`

	// Backend names the reader that produced the text.
	Backend Backend `json:"backend" yaml:"backend"`

	// PageCount is the total number of pages in the document.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Pages lists the 1-indexed pages that yielded text, in ascending order.
	Pages []int `json:"pages" yaml:"pages"`

	// Characters is the length of the assembled output in runes.
	Characters int `json:"characters" yaml:"characters"`

	// ExtractedAt is when the output was written (UTC).
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}
