// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdiddy/pdfextract/pkg/types"
)

const (
	binPdfinfo   = "pdfinfo"
	binPdftotext = "pdftotext"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return out, err
}

var defaultExec = &osExecutor{}

// PdftotextOpener reads PDFs through the poppler pdfinfo and pdftotext
// binaries, one process per page.
type PdftotextOpener struct {
	password string
	exec     executor
}

// NewPdftotextOpener returns a poppler-backed opener. A non-empty password
// is passed to poppler as the user password.
func NewPdftotextOpener(password string) *PdftotextOpener {
	return &PdftotextOpener{password: password, exec: defaultExec}
}

func (p *PdftotextOpener) Name() types.Backend { return types.BackendPdftotext }

// Open verifies that both poppler binaries are on PATH and reads the page
// count with pdfinfo.
func (p *PdftotextOpener) Open(path string) (Document, error) {
	for _, bin := range []string{binPdfinfo, binPdftotext} {
		if _, err := p.exec.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%w: %s not found on PATH (install poppler-utils)", ErrCapabilityUnavailable, bin)
		}
	}

	args := append(p.passwordArgs(), path)
	out, err := p.exec.Output(binPdfinfo, args...)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	pages, err := parsePageCount(out)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &popplerDocument{opener: p, path: path, pages: pages}, nil
}

func (p *PdftotextOpener) passwordArgs() []string {
	if p.password == "" {
		return nil
	}
	return []string{"-upw", p.password}
}

// parsePageCount reads the "Pages:" line of pdfinfo output.
func parsePageCount(out []byte) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Pages" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, fmt.Errorf("invalid page count %q: %w", strings.TrimSpace(value), err)
		}
		return n, nil
	}
	return 0, errors.New("pdfinfo output has no Pages line")
}

type popplerDocument struct {
	opener *PdftotextOpener
	path   string
	pages  int
}

func (d *popplerDocument) NumPage() int { return d.pages }

func (d *popplerDocument) PageText(i int) (string, error) {
	n := strconv.Itoa(i)
	args := []string{"-enc", "UTF-8", "-f", n, "-l", n}
	args = append(args, d.opener.passwordArgs()...)
	args = append(args, d.path, "-")

	out, err := d.opener.exec.Output(binPdftotext, args...)
	if err != nil {
		return "", err
	}
	// pdftotext terminates every page with a form feed.
	return strings.TrimRight(string(out), "\f"), nil
}

func (d *popplerDocument) Close() error { return nil }
