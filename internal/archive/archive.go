// Package archive bundles a finished batch's output files into a single
// tar+zstd archive, mirroring the teacher codec's own "tar the plain
// bytes, let zstd do the entropy coding" split — redirected here from
// per-image bitstream coding (which spec.md explicitly excludes) to
// batch-output packaging.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Write creates a tar+zstd archive at archivePath containing each of
// files, stored under its base name.
func Write(archivePath string, files []string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("archive: creating %s: %w", archivePath, err)
	}
	defer out.Close()

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return fmt.Errorf("archive: starting zstd writer: %w", err)
	}

	tw := tar.NewWriter(zw)

	for _, path := range files {
		if err := addFile(tw, path); err != nil {
			tw.Close()
			zw.Close()
			return err
		}
	}

	if err := tw.Close(); err != nil {
		zw.Close()
		return fmt.Errorf("archive: closing tar stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: closing zstd stream: %w", err)
	}
	return nil
}

func addFile(tw *tar.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("archive: opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("archive: stat %s: %w", path, err)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("archive: building header for %s: %w", path, err)
	}
	hdr.Name = filepath.Base(path)

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("archive: writing header for %s: %w", path, err)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("archive: writing %s: %w", path, err)
	}
	return nil
}
