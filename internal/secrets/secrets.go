// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads document passwords kept out of the config file.
// Each regular file in the secrets directory holds one value: the file name
// is the key and the trimmed contents are the value.
//
// Recognized key: pdf-password.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// KeyPDFPassword names the file holding the user password for encrypted PDFs.
const KeyPDFPassword = "pdf-password"

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads every non-hidden file in dir. A missing directory yields an
// empty set. Files that cannot be read are reported on w and skipped.
func Load(dir string, w io.Writer) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return Secrets{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := Secrets{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			s[name] = v
		}
	}
	return s, nil
}

// Value returns override when it is set, otherwise the stored value for key.
func (s Secrets) Value(key, override string) string {
	if override != "" {
		return override
	}
	return s[key]
}
