// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfextract/internal/pdftest"
)

func TestNativeOpener_Extract(t *testing.T) {
	path := pdftest.WriteFile(t, t.TempDir(), "contract.pdf", []string{
		"Clause one",
		"",
		"Clause three",
	})

	var log bytes.Buffer
	res, err := Extract(NewNativeOpener(""), path, Options{}, &log)
	require.NoError(t, err)

	assert.Equal(t, 3, res.PageCount)
	assert.Equal(t, []int{1, 3}, res.Pages())
	assert.Contains(t, log.String(), "Total pages: 3")

	assert.Contains(t, res.Text, "--- PAGE 1 ---")
	assert.Contains(t, res.Text, "Clause one")
	assert.NotContains(t, res.Text, "--- PAGE 2 ---")
	assert.Contains(t, res.Text, "--- PAGE 3 ---")
	assert.Contains(t, res.Text, "Clause three")
	assert.Less(t, strings.Index(res.Text, "PAGE 1"), strings.Index(res.Text, "PAGE 3"))
}

func TestNativeOpener_AllPages(t *testing.T) {
	pages := []string{"first", "second", "third", "fourth"}
	path := pdftest.WriteFile(t, t.TempDir(), "four.pdf", pages)

	res, err := Extract(NewNativeOpener(""), path, Options{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, res.Pages())
	assert.Equal(t, 4, strings.Count(res.Text, "--- PAGE "))

	again, err := Extract(NewNativeOpener(""), path, Options{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, res.Text, again.Text)
}

func TestNativeOpener_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a PDF document"), 0o644))

	_, err := Extract(NewNativeOpener(""), path, Options{}, &bytes.Buffer{})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestNativeOpener_MissingFile(t *testing.T) {
	_, err := NewNativeOpener("").Open(filepath.Join(t.TempDir(), "absent.pdf"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNativeOpener_PasswordOfferedOnce(t *testing.T) {
	pw := NewNativeOpener("secret").passwordFunc()
	require.NotNil(t, pw)
	assert.Equal(t, "secret", pw())
	assert.Equal(t, "", pw())

	assert.Nil(t, NewNativeOpener("").passwordFunc())
}
