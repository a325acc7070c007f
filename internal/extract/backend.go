// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdiddy/pdfextract/pkg/types"
)

// NewOpener returns the backend named in cfg. An empty name selects the
// native backend.
func NewOpener(cfg types.ExtractionConfig) (Opener, error) {
	switch cfg.Backend {
	case "", types.BackendNative:
		return NewNativeOpener(cfg.Password), nil
	case types.BackendPdftotext:
		return NewPdftotextOpener(cfg.Password), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: want %s or %s",
			cfg.Backend, types.BackendNative, types.BackendPdftotext)
	}
}
