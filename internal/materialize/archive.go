package materialize

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path"

	"github.com/mosaicgen/mosaic/internal/ctxlog"
	"github.com/mosaicgen/mosaic/internal/merge"
)

// WriteArchive materializes the virtual tree as a zip archive at destPath.
// Entries are written in sorted path order so the archive bytes are
// reproducible for a given tree.
func WriteArchive(ctx context.Context, tree *merge.Tree, destPath string) error {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating archive '%s': %w", destPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range tree.Paths() {
		entry, _ := tree.Get(p)
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   path.Clean(entry.Path)[1:],
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("adding '%s' to archive: %w", entry.Path, err)
		}
		if _, err := w.Write([]byte(entry.Content)); err != nil {
			return fmt.Errorf("writing '%s' to archive: %w", entry.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive '%s': %w", destPath, err)
	}

	logger.Info("Project archived.", "path", destPath, "files", tree.Len())
	return nil
}
