package testsupport

import (
	"archive/zip"
	"io"
	"os"
	"testing"
)

// ZipEntry is one named entry for a test archive.
type ZipEntry struct {
	Name string
	Body string
}

// WriteZip creates a zip archive at path with the given entries, in order.
func WriteZip(t testing.TB, path string, entries []ZipEntry) {
	t.Helper()

	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip %s: %v", path, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, entry := range entries {
		w, err := writer.Create(entry.Name)
		if err != nil {
			t.Fatalf("create entry %s: %v", entry.Name, err)
		}
		if _, err := w.Write([]byte(entry.Body)); err != nil {
			t.Fatalf("write entry %s: %v", entry.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close zip file: %v", err)
	}
}

// ReadZip returns the archive's entries as a name-to-content map.
func ReadZip(t testing.TB, path string) map[string]string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip %s: %v", path, err)
	}
	defer reader.Close()

	entries := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", file.Name, err)
		}
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read entry %s: %v", file.Name, err)
		}
		_ = rc.Close()
		entries[file.Name] = string(body)
	}
	return entries
}
