package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifactWriter abstracts output persistence so dry runs and tests can swap
// the filesystem out. Paths are slash-separated and relative to the output
// root.
type artifactWriter interface {
	WriteFile(ctx context.Context, rel string, data []byte) error
}

func newFSWriter(root string) (artifactWriter, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("generator: output directory is required")
	}
	return &fsWriter{root: root}, nil
}

type fsWriter struct {
	root string
}

func (w *fsWriter) WriteFile(ctx context.Context, rel string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return errors.New("generator: write requires a path")
	}
	full := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", rel, err)
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) WriteFile(context.Context, string, []byte) error { return nil }

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
