// Package dedup removes duplicate lines from flat corpus files. The exact
// strategy holds the whole file in memory; the bucketed strategy bounds
// memory by partitioning lines round-robin across temporary files and
// deduplicating each bucket independently, at the cost of missing
// duplicates that land in different buckets.
package dedup

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// Result summarizes one deduplication run.
type Result struct {
	Lines      int
	Duplicates int
}

// OutputPath returns the conventional output name next to the input:
// dedup.<name> for the exact strategy, pseudodedup.<name> for the bucketed
// one.
func OutputPath(input string, bins int) string {
	dir, name := filepath.Split(input)
	prefix := "dedup."
	if bins > 1 {
		prefix = "pseudodedup."
	}
	return filepath.Join(dir, prefix+name)
}

// File deduplicates input line-wise into output, exactly and in memory.
// Output line order is randomized. Returns the total line count and the
// number of duplicates removed.
func File(input, output string, logger *slog.Logger) (Result, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", input, err)
	}

	lines := splitLines(string(data))
	unique := uniqueShuffled(lines)

	res := Result{Lines: len(lines), Duplicates: len(lines) - len(unique)}
	if err := writeLines(output, unique); err != nil {
		return Result{}, err
	}

	logger.Info(fmt.Sprintf("deduplicated %s, removed %d duplicates out of %d lines", input, res.Duplicates, res.Lines),
		slog.Int("lines", res.Lines),
		slog.Int("duplicates", res.Duplicates))
	return res, nil
}

// FileBucketed deduplicates input approximately, using bins temporary
// bucket files to bound memory. Line i is assigned to bucket i mod bins, so
// duplicates in different buckets survive (up to bins copies of a line) and
// the output is only randomized within each bucket. warnBytes, when
// positive, logs a warning for any bucket larger than that size.
func FileBucketed(input, output string, bins int, warnBytes int64, logger *slog.Logger) (Result, error) {
	if bins < 2 {
		return Result{}, fmt.Errorf("bucketed dedup requires at least 2 bins, got %d", bins)
	}

	in, err := os.Open(input)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", input, err)
	}
	defer in.Close()

	tempDir, err := os.MkdirTemp("", "subclean-dedup-")
	if err != nil {
		return Result{}, fmt.Errorf("create bucket directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	buckets, err := fillBuckets(in, tempDir, bins)
	if err != nil {
		return Result{}, err
	}

	out, err := os.Create(output)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()

	buffered := bufio.NewWriter(out)
	res := Result{}
	for _, bucket := range buckets {
		if warnBytes > 0 {
			if info, err := os.Stat(bucket); err == nil && info.Size() > warnBytes {
				logger.Warn("bucket exceeds memory threshold, consider more bins",
					slog.String("bucket", filepath.Base(bucket)),
					slog.Int64("bytes", info.Size()))
			}
		}
		data, err := os.ReadFile(bucket)
		if err != nil {
			return Result{}, fmt.Errorf("read bucket: %w", err)
		}
		if len(data) == 0 {
			continue
		}
		lines := splitLines(string(data))
		unique := uniqueShuffled(lines)
		res.Lines += len(lines)
		res.Duplicates += len(lines) - len(unique)
		for _, line := range unique {
			if _, err := buffered.WriteString(line); err != nil {
				return Result{}, fmt.Errorf("write %s: %w", output, err)
			}
			if err := buffered.WriteByte('\n'); err != nil {
				return Result{}, fmt.Errorf("write %s: %w", output, err)
			}
		}
	}

	if err := buffered.Flush(); err != nil {
		return Result{}, fmt.Errorf("flush %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", output, err)
	}

	logger.Info(fmt.Sprintf("pseudodeduplicated %s, %s is also pseudorandomized", input, output),
		slog.Int("bins", bins),
		slog.Int("lines", res.Lines),
		slog.Int("duplicates", res.Duplicates))
	return res, nil
}

// fillBuckets streams in line-by-line into bins bucket files, assigning
// line i to bucket i mod bins via an explicit counter. Returns the bucket
// paths; every bucket file is closed before returning.
func fillBuckets(in *os.File, tempDir string, bins int) ([]string, error) {
	paths := make([]string, bins)
	files := make([]*os.File, bins)
	writers := make([]*bufio.Writer, bins)
	closeAll := func() {
		for _, f := range files {
			if f != nil {
				_ = f.Close()
			}
		}
	}

	for i := 0; i < bins; i++ {
		paths[i] = filepath.Join(tempDir, fmt.Sprintf("bucket%d.txt", i))
		f, err := os.Create(paths[i])
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("create bucket %d: %w", i, err)
		}
		files[i] = f
		writers[i] = bufio.NewWriter(f)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	index := 0
	for scanner.Scan() {
		w := writers[index%bins]
		if _, err := w.Write(scanner.Bytes()); err != nil {
			closeAll()
			return nil, fmt.Errorf("write bucket: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			closeAll()
			return nil, fmt.Errorf("write bucket: %w", err)
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		closeAll()
		return nil, fmt.Errorf("scan input: %w", err)
	}

	for i := 0; i < bins; i++ {
		if err := writers[i].Flush(); err != nil {
			closeAll()
			return nil, fmt.Errorf("flush bucket %d: %w", i, err)
		}
		if err := files[i].Close(); err != nil {
			files[i] = nil
			closeAll()
			return nil, fmt.Errorf("close bucket %d: %w", i, err)
		}
		files[i] = nil
	}
	return paths, nil
}

// splitLines splits file content into lines, ignoring a trailing newline.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// uniqueShuffled returns the distinct lines in random order.
func uniqueShuffled(lines []string) []string {
	set := make(map[string]struct{}, len(lines))
	unique := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := set[line]; ok {
			continue
		}
		set[line] = struct{}{}
		unique = append(unique, line)
	}
	rand.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	return unique
}

func writeLines(path string, lines []string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	buffered := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := buffered.WriteString(line); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := buffered.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
