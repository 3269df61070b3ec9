package exportdir

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"opportunity-finder/internal/config"
)

// FileSystemStorage writes export files under a base directory, grouped by
// date: basePath/YYYY/MM/DD/opportunities_YYYYMMDD_HHMMSS.csv
type FileSystemStorage struct {
	basePath string
	now      func() time.Time
}

// NewFileSystemStorage resolves the export path and creates it if missing.
func NewFileSystemStorage(cfg config.ExportConfig) (*FileSystemStorage, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("export path must not be empty")
	}

	absBasePath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve export path '%s': %w", cfg.Path, err)
	}

	if _, err := os.Stat(absBasePath); os.IsNotExist(err) {
		log.Printf("INFO: [ExportStorage] export directory '%s' does not exist, creating it...", absBasePath)
		if err := os.MkdirAll(absBasePath, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create export directory '%s': %w", absBasePath, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking export directory '%s': %w", absBasePath, err)
	}

	log.Printf("INFO: [ExportStorage] exports will be written to %s", absBasePath)
	return &FileSystemStorage{basePath: absBasePath, now: time.Now}, nil
}

// BasePath returns the absolute export root.
func (fs *FileSystemStorage) BasePath() string {
	return fs.basePath
}

func (fs *FileSystemStorage) buildTargetPath(t time.Time) string {
	name := fmt.Sprintf("opportunities_%s.csv", t.Format("20060102_150405"))
	return filepath.Join(fs.basePath, t.Format("2006/01/02"), name)
}

// SaveExport creates a new export file and lets write fill it. A partially
// written file is removed on error. Returns the absolute path.
func (fs *FileSystemStorage) SaveExport(write func(io.Writer) error) (string, error) {
	if write == nil {
		return "", fmt.Errorf("SaveExport: write func must not be nil")
	}
	targetPath := fs.buildTargetPath(fs.now())

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return "", fmt.Errorf("cannot create directory for '%s': %w", targetPath, err)
	}
	f, err := os.OpenFile(targetPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("cannot create export file '%s': %w", targetPath, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(targetPath)
		return "", fmt.Errorf("writing export file '%s': %w", targetPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("closing export file '%s': %w", targetPath, err)
	}

	log.Printf("INFO: [ExportStorage] export saved to %s", targetPath)
	return targetPath, nil
}
