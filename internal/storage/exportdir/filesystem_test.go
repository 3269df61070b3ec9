package exportdir

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"opportunity-finder/internal/config"
)

func newTestStorage(t *testing.T) *FileSystemStorage {
	t.Helper()
	fs, err := NewFileSystemStorage(config.ExportConfig{Path: filepath.Join(t.TempDir(), "nested", "exports")})
	if err != nil {
		t.Fatalf("NewFileSystemStorage: %v", err)
	}
	fs.now = func() time.Time { return time.Date(2024, 5, 1, 9, 8, 7, 0, time.UTC) }
	return fs
}

func TestNewFileSystemStorageCreatesDir(t *testing.T) {
	fs := newTestStorage(t)
	info, err := os.Stat(fs.BasePath())
	if err != nil || !info.IsDir() {
		t.Fatalf("export dir not created: %v", err)
	}
}

func TestNewFileSystemStorageEmptyPath(t *testing.T) {
	if _, err := NewFileSystemStorage(config.ExportConfig{}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSaveExport(t *testing.T) {
	fs := newTestStorage(t)

	path, err := fs.SaveExport(func(w io.Writer) error {
		_, err := fmt.Fprint(w, "id,title\n1,hello\n")
		return err
	})
	if err != nil {
		t.Fatalf("SaveExport: %v", err)
	}

	want := filepath.Join(fs.BasePath(), "2024", "05", "01", "opportunities_20240501_090807.csv")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "id,title\n1,hello\n" {
		t.Errorf("content = %q", data)
	}

	// same timestamp must not overwrite an existing export
	if _, err := fs.SaveExport(func(io.Writer) error { return nil }); err == nil {
		t.Error("expected error when export file already exists")
	}
}

func TestSaveExportRemovesPartialFile(t *testing.T) {
	fs := newTestStorage(t)

	_, err := fs.SaveExport(func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(fs.buildTargetPath(fs.now())); !os.IsNotExist(statErr) {
		t.Errorf("partial export left behind: %v", statErr)
	}
}
