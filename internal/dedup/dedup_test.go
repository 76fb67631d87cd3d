package dedup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"subclean/internal/logging"
)

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return splitLines(string(data))
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("/data/sub.en.txt", 1); got != "/data/dedup.sub.en.txt" {
		t.Fatalf("exact output path: %q", got)
	}
	if got := OutputPath("/data/sub.en.txt", 8); got != "/data/pseudodedup.sub.en.txt" {
		t.Fatalf("bucketed output path: %q", got)
	}
}

func TestFileExactCounts(t *testing.T) {
	in := writeInput(t, "a", "b", "a", "c")
	out := filepath.Join(filepath.Dir(in), "dedup.corpus.txt")

	res, err := File(in, out, logging.NewNop())
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if res.Lines != 4 {
		t.Fatalf("lines: got %d, want 4", res.Lines)
	}
	if res.Duplicates != 1 {
		t.Fatalf("duplicates: got %d, want 1", res.Duplicates)
	}

	lines := readLines(t, out)
	sort.Strings(lines)
	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("output lines: got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("output lines: got %v, want %v", lines, want)
		}
	}
}

func TestFileMissingInputIsFatal(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "absent.txt"), "out.txt", logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestFillBucketsRoundRobin(t *testing.T) {
	in := writeInput(t, "a", "b", "a", "c")
	f, err := os.Open(in)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	paths, err := fillBuckets(f, t.TempDir(), 2)
	if err != nil {
		t.Fatalf("fillBuckets: %v", err)
	}

	bucket0, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(bucket0) != "a\na\n" {
		t.Fatalf("bucket 0: got %q, want %q", bucket0, "a\na\n")
	}
	bucket1, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if string(bucket1) != "b\nc\n" {
		t.Fatalf("bucket 1: got %q, want %q", bucket1, "b\nc\n")
	}
}

func TestFileBucketedDedupsWithinBuckets(t *testing.T) {
	in := writeInput(t, "a", "b", "a", "c")
	out := filepath.Join(filepath.Dir(in), "pseudodedup.corpus.txt")

	res, err := FileBucketed(in, out, 2, 0, logging.NewNop())
	if err != nil {
		t.Fatalf("FileBucketed: %v", err)
	}
	if res.Lines != 4 {
		t.Fatalf("lines: got %d, want 4", res.Lines)
	}
	// Both "a" copies land in bucket 0 and collapse to one.
	if res.Duplicates != 1 {
		t.Fatalf("duplicates: got %d, want 1", res.Duplicates)
	}

	lines := readLines(t, out)
	sort.Strings(lines)
	if strings.Join(lines, ",") != "a,b,c" {
		t.Fatalf("output lines: %v", lines)
	}
}

func TestFileBucketedMissesCrossBucketDuplicates(t *testing.T) {
	// "x" at indexes 0 and 1 lands in different buckets, so both copies
	// survive. This is the documented approximation.
	in := writeInput(t, "x", "x", "y", "z")
	out := filepath.Join(filepath.Dir(in), "pseudodedup.corpus.txt")

	res, err := FileBucketed(in, out, 2, 0, logging.NewNop())
	if err != nil {
		t.Fatalf("FileBucketed: %v", err)
	}
	if res.Duplicates != 0 {
		t.Fatalf("cross-bucket duplicates should survive: %d removed", res.Duplicates)
	}

	count := 0
	for _, line := range readLines(t, out) {
		if line == "x" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 surviving copies of x, got %d", count)
	}
}

func TestFileBucketedCleansUpBuckets(t *testing.T) {
	in := writeInput(t, "a", "b", "c", "d")
	out := filepath.Join(filepath.Dir(in), "pseudodedup.corpus.txt")

	before := tempEntries(t)
	if _, err := FileBucketed(in, out, 3, 0, logging.NewNop()); err != nil {
		t.Fatalf("FileBucketed: %v", err)
	}
	after := tempEntries(t)
	if after > before {
		t.Fatalf("bucket temp directories leaked: %d -> %d", before, after)
	}
}

func TestFileBucketedMissingInputIsFatal(t *testing.T) {
	_, err := FileBucketed(filepath.Join(t.TempDir(), "absent.txt"), "out.txt", 4, 0, logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestFileBucketedRejectsSingleBin(t *testing.T) {
	in := writeInput(t, "a")
	if _, err := FileBucketed(in, "out.txt", 1, 0, logging.NewNop()); err == nil {
		t.Fatal("expected error for bins < 2")
	}
}

func tempEntries(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(os.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "subclean-dedup-") {
			count++
		}
	}
	return count
}
