package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportStorage writes rendered report documents to a local directory.
// It is the default artifact sink when no bucket is configured.
type ReportStorage struct {
	dir string
}

func NewReportStorage(dir string) (*ReportStorage, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	return &ReportStorage{dir: dir}, nil
}

func (s *ReportStorage) Save(_ context.Context, name, _ string, document []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("file name is required")
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
