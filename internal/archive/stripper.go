package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subclean/internal/subtitle"
)

// SourcePath returns the location of a language's raw subtitle archive.
func SourcePath(corporaDir, lang string) string {
	return filepath.Join(corporaDir, lang+".zip")
}

// StrippedPath returns the location of a language's stripped archive.
func StrippedPath(corporaDir, lang string) string {
	return filepath.Join(corporaDir, lang+"_stripped.zip")
}

// Stripper converts the XML entries of a subtitle archive to one of the
// plain-text encodings and writes the results to a new archive. The source
// archive is never modified.
type Stripper struct {
	CorporaDir string
	Root       string
	Logger     *slog.Logger
}

// Strip processes every matching entry of <lang>.zip into
// <lang>_stripped.zip and returns the number of entries converted. A
// missing source archive is a fatal error; a malformed entry degrades to
// partial or empty output for that entry only.
func (s *Stripper) Strip(lang string, format subtitle.Format, years YearRange) (int, error) {
	source := SourcePath(s.CorporaDir, lang)
	reader, err := zip.OpenReader(source)
	if err != nil {
		return 0, fmt.Errorf("open archive %s: %w", source, err)
	}
	defer reader.Close()

	selection := Selection{Root: s.Root, Lang: lang, Format: format, Years: years}
	var entries []*zip.File
	for _, file := range reader.File {
		if selection.Matches(file.Name, "xml") {
			entries = append(entries, file)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	s.Logger.Info(fmt.Sprintf("stripping xml from %d subtitles in %s", len(entries), lang),
		slog.String("lang", lang),
		slog.String("format", string(format)))

	target := StrippedPath(s.CorporaDir, lang)
	out, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create stripped archive %s: %w", target, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, entry := range entries {
		text, err := stripEntry(entry, format)
		if err != nil {
			_ = writer.Close()
			return 0, err
		}
		name := strings.TrimSuffix(entry.Name, ".xml") + "." + format.Extension()
		w, err := writer.Create(name)
		if err != nil {
			_ = writer.Close()
			return 0, fmt.Errorf("create entry %s: %w", name, err)
		}
		if _, err := io.WriteString(w, text); err != nil {
			_ = writer.Close()
			return 0, fmt.Errorf("write entry %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("finalize stripped archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close stripped archive: %w", err)
	}
	return len(entries), nil
}

// stripEntry reads one archive entry and encodes it. XML problems are
// absorbed by the tolerant parser; only I/O failures surface as errors.
func stripEntry(entry *zip.File, format subtitle.Format) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read entry %s: %w", entry.Name, err)
	}
	return subtitle.Encode(subtitle.Parse(data), format), nil
}
