// Package statictpl walks a generator's pre-authored template directory on
// the host and folds its files into the generator's output, applying the
// same category mapping rules as generator-authored files.
package statictpl

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mosaicgen/mosaic/internal/codegen"
	"github.com/mosaicgen/mosaic/internal/config"
	"github.com/mosaicgen/mosaic/internal/routing"
)

// skippedDirs are build artifact directories never copied from a template tree.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"target":       {},
	"dist":         {},
	"build":        {},
	"vendor":       {},
}

// skippedFiles are lock files never copied from a template tree.
var skippedFiles = map[string]struct{}{
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"Cargo.lock":        {},
	"go.sum":            {},
}

// Walk reads every template file under dir and adds it to out, assigning
// each file the category of the first matching path mapping.
func Walk(dir string, mappings []*config.PathMapping, out *codegen.Output) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skippedDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if _, skip := skippedFiles[d.Name()]; skip {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		out.AddFile(rel, string(content), routing.CategoryFor(mappings, rel))
		return nil
	})
}
