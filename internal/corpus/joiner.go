package corpus

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"subclean/internal/archive"
	"subclean/internal/subtitle"
)

// CorpusPath returns the flat corpus file produced for a language and
// format: sub.<lang>.<format> inside the corpora directory.
func CorpusPath(corporaDir, lang string, format subtitle.Format) string {
	return filepath.Join(corporaDir, "sub."+lang+"."+string(format))
}

// Joiner concatenates the entries of a stripped archive into one flat
// corpus file, cleaning punctuation and markup along the way.
type Joiner struct {
	CorporaDir string
	Root       string
	Logger     *slog.Logger

	// Progress, when set, is called after each entry with the number of
	// entries processed and the total. It must not alter output.
	Progress func(done, total int)
}

// Join processes every matching entry of <lang>_stripped.zip in archive
// listing order and returns the number of files joined.
func (j *Joiner) Join(lang string, format subtitle.Format, years archive.YearRange) (int, error) {
	source := archive.StrippedPath(j.CorporaDir, lang)
	reader, err := zip.OpenReader(source)
	if err != nil {
		return 0, fmt.Errorf("open stripped archive %s: %w", source, err)
	}
	defer reader.Close()

	selection := archive.Selection{Root: j.Root, Lang: lang, Format: format, Years: years}
	var entries []*zip.File
	for _, file := range reader.File {
		if selection.Matches(file.Name, format.Extension()) {
			entries = append(entries, file)
		}
	}

	j.Logger.Info(fmt.Sprintf("joining %d subtitles in %s into a single file", len(entries), lang),
		slog.String("lang", lang),
		slog.String("format", string(format)))

	target := CorpusPath(j.CorporaDir, lang, format)
	out, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create corpus file %s: %w", target, err)
	}
	defer out.Close()

	buffered := bufio.NewWriter(out)
	for i, entry := range entries {
		body, err := readEntry(entry)
		if err != nil {
			return 0, err
		}
		if _, err := buffered.WriteString(Clean(body, format)); err != nil {
			return 0, fmt.Errorf("write corpus file: %w", err)
		}
		if j.Progress != nil {
			j.Progress(i+1, len(entries))
		}
	}

	if err := buffered.Flush(); err != nil {
		return 0, fmt.Errorf("flush corpus file: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close corpus file: %w", err)
	}
	return len(entries), nil
}

func readEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read entry %s: %w", entry.Name, err)
	}
	return string(data), nil
}
