// Package csv writes reports as CSV files into a target directory.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bilty/internal/export"
)

type Writer struct {
	dir string
	now func() time.Time
}

var _ export.ReportWriter = (*Writer)(nil)

func New(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// WriteReport writes the report as <name>-<date>.csv under the target
// directory and returns the file path.
func (w *Writer) WriteReport(_ context.Context, r export.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.csv", r.Name, w.now().Format("2006-01-02"))
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(r.Header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return "", fmt.Errorf("write rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}
