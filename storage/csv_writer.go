package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

// CSVWriter writes a table to a CSV file, overwriting any previous content.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a writer for the given destination path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (c *CSVWriter) Name() string { return "csv" }

// Path returns the destination file.
func (c *CSVWriter) Path() string { return c.path }

// Write serialises the header and every row. The content goes to a temporary file
// in the destination directory first and is renamed over the target, so the target
// is either fully replaced or left untouched. Intermediate directories are created
// automatically.
func (c *CSVWriter) Write(_ context.Context, t *models.Table) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create output dir for %q: %w", models.ErrWriteError, c.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", models.ErrWriteError, c.path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns()); err != nil {
		return fmt.Errorf("%w: write header: %w", models.ErrWriteError, err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := w.Write(t.Row(i).Texts()); err != nil {
			return fmt.Errorf("%w: write row %d: %w", models.ErrWriteError, i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush %q: %w", models.ErrWriteError, c.path, err)
	}

	if err := tmp.Chmod(0644); err != nil {
		return fmt.Errorf("%w: chmod %q: %w", models.ErrWriteError, c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %w", models.ErrWriteError, c.path, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("%w: replace %q: %w", models.ErrWriteError, c.path, err)
	}
	committed = true
	return nil
}

// Close is a no-op; every Write opens and closes its own file.
func (c *CSVWriter) Close() error { return nil }
