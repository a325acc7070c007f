// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrCapabilityUnavailable reports that the selected backend cannot run
	// in this environment (for example, poppler binaries are not installed).
	ErrCapabilityUnavailable = errors.New("extraction capability unavailable")

	// ErrNoText reports that no page of the document yielded any text.
	ErrNoText = errors.New("no extractable text")
)

// ParseError reports that a document could not be opened or that one of
// its pages could not be read. Page is 0 when the failure happened before
// any page was requested.
type ParseError struct {
	Path string
	Page int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("parsing %s page %d: %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// asParseError passes capability and parse errors through unchanged and
// wraps anything else in a ParseError for path and page.
func asParseError(path string, page int, err error) error {
	if errors.Is(err, ErrCapabilityUnavailable) {
		return err
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	return &ParseError{Path: path, Page: page, Err: err}
}

// recovered converts a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
