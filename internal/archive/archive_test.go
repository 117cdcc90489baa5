package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestWriteProducesReadableArchive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	if err := os.WriteFile(a, []byte("fake-png-a"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(b, []byte("fake-png-b-longer-content"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	archivePath := filepath.Join(dir, "batch.tar.zst")
	if err := Write(archivePath, []string{a, b}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("unexpected error reading archive: %v", err)
	}

	zr, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("unexpected error opening zstd stream: %v", err)
	}
	defer zr.Close()

	tr := tar.NewReader(zr)
	found := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected error reading tar entry: %v", err)
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("unexpected error reading entry content: %v", err)
		}
		found[hdr.Name] = string(content)
	}

	if found["a.png"] != "fake-png-a" || found["b.png"] != "fake-png-b-longer-content" {
		t.Errorf("archive contents mismatch: %+v", found)
	}
}
