package materialize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/merge"
)

// maxConcurrentWrites bounds parallel file creation while staging.
const maxConcurrentWrites = 16

// WriteTree materializes the virtual tree at destDir. The tree is staged in
// a sibling temp directory first and moved into place with a single rename,
// so a failed run never leaves a half-written project behind. destDir must
// not already exist.
func WriteTree(ctx context.Context, tree *merge.Tree, destDir string) error {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(destDir); err == nil {
		return fmt.Errorf("output directory '%s' already exists", destDir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking output directory '%s': %w", destDir, err)
	}

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating parent directory '%s': %w", parent, err)
	}

	staging, err := os.MkdirTemp(parent, ".mosaic-staging-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)

	for _, p := range tree.Paths() {
		entry, _ := tree.Get(p)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeEntry(staging, entry)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("staging project files: %w", err)
	}

	if err := os.Rename(staging, destDir); err != nil {
		return fmt.Errorf("moving staged project into place: %w", err)
	}

	logger.Info("Project materialized.", "path", destDir, "files", tree.Len())
	return nil
}

func writeEntry(root string, entry *merge.Entry) error {
	// Tree paths are absolute within the project ("/src/app.ts").
	rel := filepath.FromSlash(entry.Path[1:])
	full := filepath.Join(root, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directory for '%s': %w", entry.Path, err)
	}
	if err := os.WriteFile(full, []byte(entry.Content), 0o644); err != nil {
		return fmt.Errorf("writing '%s': %w", entry.Path, err)
	}
	return nil
}
