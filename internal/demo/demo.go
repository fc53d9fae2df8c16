// Package demo ships a small embedded dataset so the scheduler can be tried
// without preparing input files.
package demo

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed data
var dataFS embed.FS

// Materialize writes the sample dataset into dir.
func Materialize(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create demo dir: %w", err)
	}
	entries, err := fs.ReadDir(dataFS, "data")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		content, err := dataFS.ReadFile("data/" + entry.Name())
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, entry.Name()), content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", entry.Name(), err)
		}
	}
	return nil
}
