package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// LoaderConfig configures how article source files are discovered within a
// base directory.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader discovers article source files over a filesystem. All reads happen
// up front; parsing never touches the filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// FileSource is one raw article file, read in full.
type FileSource struct {
	Path string
	Data []byte
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadDirectory reads every matching file under dir, returned sorted by path.
// The sorted order is the stable total order later used for title conflict
// precedence, so it must not depend on directory iteration order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*FileSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := filepath.ToSlash(filepath.Clean(dir))
	if root == "" {
		root = "."
	}

	var sources []*FileSource

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.recursive && filepath.Clean(path) != filepath.Clean(root) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if match, err := filepath.Match(l.pattern, filepath.Base(rel)); err != nil || !match {
			return nil
		}

		data, err := fs.ReadFile(l.fs, rel)
		if err != nil {
			return fmt.Errorf("markdown loader read %s: %w", rel, err)
		}
		sources = append(sources, &FileSource{Path: rel, Data: data})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})

	return sources, nil
}
