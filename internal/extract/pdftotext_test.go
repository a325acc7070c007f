// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	outputFunc    func(name string, args []string) ([]byte, error)
	calls         []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Output(name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, name+" "+strings.Join(args, " "))
	return m.outputFunc(name, args)
}

func popplerAvailable() map[string]bool {
	return map[string]bool{"pdfinfo": true, "pdftotext": true}
}

// pagedOutput simulates pdfinfo and pdftotext for a document with the given
// page texts.
func pagedOutput(pages []string) func(string, []string) ([]byte, error) {
	return func(name string, args []string) ([]byte, error) {
		switch name {
		case "pdfinfo":
			return []byte(fmt.Sprintf("Producer:       test\nPages:          %d\nEncrypted:      no\n", len(pages))), nil
		case "pdftotext":
			var first int
			for i, a := range args {
				if a == "-f" {
					fmt.Sscanf(args[i+1], "%d", &first)
				}
			}
			return []byte(pages[first-1] + "\f"), nil
		}
		return nil, errors.New("unexpected command " + name)
	}
}

func TestPdftotextOpener_Extract(t *testing.T) {
	exec := &mockExecutor{
		availableBins: popplerAvailable(),
		outputFunc:    pagedOutput([]string{"Intro\n", "", "Annex\n"}),
	}
	o := &PdftotextOpener{exec: exec}

	res, err := Extract(o, "contract.pdf", Options{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.PageCount)
	assert.Equal(t, []int{1, 3}, res.Pages())
	assert.Equal(t, "\n--- PAGE 1 ---\n\nIntro\n\n\n\n--- PAGE 3 ---\n\nAnnex\n\n\n", res.Text)
	assert.NotContains(t, res.Text, "\f")
	assert.Contains(t, exec.calls, "pdftotext -enc UTF-8 -f 2 -l 2 contract.pdf -")
}

func TestPdftotextOpener_Password(t *testing.T) {
	exec := &mockExecutor{
		availableBins: popplerAvailable(),
		outputFunc:    pagedOutput([]string{"locked"}),
	}
	o := &PdftotextOpener{password: "pw", exec: exec}

	_, err := Extract(o, "locked.pdf", Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"pdfinfo -upw pw locked.pdf",
		"pdftotext -enc UTF-8 -f 1 -l 1 -upw pw locked.pdf -",
	}, exec.calls)
}

func TestPdftotextOpener_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		bins    map[string]bool
		wantBin string
	}{
		{name: "nothing installed", bins: map[string]bool{}, wantBin: "pdfinfo"},
		{name: "pdftotext missing", bins: map[string]bool{"pdfinfo": true}, wantBin: "pdftotext"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &PdftotextOpener{exec: &mockExecutor{availableBins: tt.bins}}
			_, err := o.Open("doc.pdf")

			require.ErrorIs(t, err, ErrCapabilityUnavailable)
			assert.Contains(t, err.Error(), tt.wantBin)
			assert.Contains(t, err.Error(), "install poppler-utils")
		})
	}
}

func TestPdftotextOpener_PdfinfoFailure(t *testing.T) {
	exec := &mockExecutor{
		availableBins: popplerAvailable(),
		outputFunc: func(string, []string) ([]byte, error) {
			return nil, errors.New("Syntax Error: Couldn't find trailer dictionary")
		},
	}
	_, err := Extract(&PdftotextOpener{exec: exec}, "broken.pdf", Options{}, &bytes.Buffer{})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "trailer dictionary")
}

func TestParsePageCount(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{name: "typical output", out: "Title:  x\nPages:          12\nEncrypted: no\n", want: 12},
		{name: "no pages line", out: "Title: x\n", wantErr: true},
		{name: "garbage count", out: "Pages: many\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePageCount([]byte(tt.out))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
