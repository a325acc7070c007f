// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdfextract/pkg/types"
)

// NativeOpener reads PDFs in-process with github.com/ledongthuc/pdf. It is
// always available, so it never returns ErrCapabilityUnavailable.
type NativeOpener struct {
	password string
}

// NewNativeOpener returns a native backend. A non-empty password is tried
// when the document is encrypted.
func NewNativeOpener(password string) *NativeOpener {
	return &NativeOpener{password: password}
}

func (n *NativeOpener) Name() types.Backend { return types.BackendNative }

// Open opens the file and parses the cross-reference table and trailer.
func (n *NativeOpener) Open(path string) (doc Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, &ParseError{Path: path, Err: recovered(r)}
		}
		if err != nil {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("stat: %w", err)}
	}

	r, err := pdf.NewReaderEncrypted(f, info.Size(), n.passwordFunc())
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &nativeDocument{f: f, r: r}, nil
}

// passwordFunc returns the callback ledongthuc/pdf polls for passwords. The
// reader keeps asking until it gets an empty string, so the configured
// password is offered exactly once.
func (n *NativeOpener) passwordFunc() func() string {
	if n.password == "" {
		return nil
	}
	offered := false
	return func() string {
		if offered {
			return ""
		}
		offered = true
		return n.password
	}
}

type nativeDocument struct {
	f *os.File
	r *pdf.Reader
}

func (d *nativeDocument) NumPage() int { return d.r.NumPage() }

func (d *nativeDocument) PageText(i int) (string, error) {
	p := d.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *nativeDocument) Close() error { return d.f.Close() }
