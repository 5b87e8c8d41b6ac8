package generator

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed static/*
var staticFS embed.FS

// copyAssets writes the bundled static files under <output>/static. A site
// asset directory, when configured, overrides bundled files with the same
// relative name.
func (s *service) copyAssets(ctx context.Context, writer artifactWriter) (int, error) {
	built := 0

	bundled, err := fs.Sub(staticFS, "static")
	if err != nil {
		return built, fmt.Errorf("generator: bundled assets: %w", err)
	}
	overrides := map[string]bool{}

	if dir := strings.TrimSpace(s.cfg.AssetDir); dir != "" {
		siteAssets := map[string][]byte{}
		walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, relErr := filepath.Rel(dir, p)
			if relErr != nil {
				return relErr
			}
			data, readErr := readFile(p)
			if readErr != nil {
				return readErr
			}
			siteAssets[filepath.ToSlash(rel)] = data
			return nil
		})
		if walkErr != nil {
			return built, fmt.Errorf("generator: scan asset dir: %w", walkErr)
		}
		rels := make([]string, 0, len(siteAssets))
		for rel := range siteAssets {
			rels = append(rels, rel)
		}
		sort.Strings(rels)
		for _, rel := range rels {
			overrides[rel] = true
			if err := writer.WriteFile(ctx, path.Join("static", rel), siteAssets[rel]); err != nil {
				return built, err
			}
			built++
		}
	}

	walkErr := fs.WalkDir(bundled, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if overrides[p] {
			return nil
		}
		data, readErr := fs.ReadFile(bundled, p)
		if readErr != nil {
			return readErr
		}
		if err := writer.WriteFile(ctx, path.Join("static", p), data); err != nil {
			return err
		}
		built++
		return nil
	})
	if walkErr != nil {
		return built, fmt.Errorf("generator: copy bundled assets: %w", walkErr)
	}
	return built, nil
}
