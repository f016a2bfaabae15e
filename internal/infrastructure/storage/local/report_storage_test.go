package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReportStorage_Save(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewReportStorage(dir)
	if err != nil {
		t.Fatalf("NewReportStorage() error = %v", err)
	}

	location, err := storage.Save(context.Background(), "macro_watch_20260815T090000Z.html", "text/html", []byte("<html>ok</html>"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !filepath.IsAbs(location) {
		t.Errorf("location %q is not absolute", location)
	}

	content, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if string(content) != "<html>ok</html>" {
		t.Errorf("saved content = %q", content)
	}
}

func TestReportStorage_SaveStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewReportStorage(dir)
	if err != nil {
		t.Fatalf("NewReportStorage() error = %v", err)
	}

	location, err := storage.Save(context.Background(), "../../etc/report.html", "text/html", []byte("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Dir(location) != dir {
		t.Errorf("report escaped the storage directory: %q", location)
	}
}

func TestReportStorage_SaveRejectsEmptyName(t *testing.T) {
	storage, err := NewReportStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewReportStorage() error = %v", err)
	}

	if _, err := storage.Save(context.Background(), "  ", "text/html", []byte("x")); err == nil {
		t.Error("Save() accepted an empty name")
	}
}
