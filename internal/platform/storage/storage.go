// Package storage is the file-storage collaborator: payslip PDFs, employee
// documents and photos land here and are served back under a public base URL.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) *Local {
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Local) Dir() string {
	return l.dir
}

// Upload writes data under path and returns the public URL it is served from.
func (l *Local) Upload(path string, data []byte) (string, error) {
	clean, err := l.cleanPath(path)
	if err != nil {
		return "", err
	}
	full := filepath.Join(l.dir, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return l.baseURL + "/" + filepath.ToSlash(clean), nil
}

func (l *Local) Delete(path string) error {
	clean, err := l.cleanPath(path)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(l.dir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *Local) cleanPath(path string) (string, error) {
	clean := filepath.Clean(strings.TrimLeft(path, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return clean, nil
}
