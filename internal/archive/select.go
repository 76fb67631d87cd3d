package archive

import (
	"strconv"
	"strings"

	"subclean/internal/subtitle"
)

// DefaultRoot is the top-level directory inside subtitle archives.
const DefaultRoot = "OpenSubtitles"

// YearRange is an inclusive-exclusive span of subtitle years.
type YearRange struct {
	Start int
	End   int
}

// DefaultYears covers every year the source archives contain.
func DefaultYears() YearRange {
	return YearRange{Start: 1900, End: 2050}
}

// Contains reports whether year falls inside [Start, End).
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year < r.End
}

// EntryYear extracts the year component of an archive entry path: the 4th
// slash-separated segment. The second return value is false when the
// segment is absent or not an integer.
func EntryYear(path string) (int, bool) {
	segments := strings.Split(path, "/")
	if len(segments) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(segments[3])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Selection describes which archive entries one run operates on.
type Selection struct {
	Root   string
	Lang   string
	Format subtitle.Format
	Years  YearRange
}

// Matches reports whether an entry path belongs to the selection: correct
// extension, under <root>/<kind>/<lang>, with an in-range year segment.
func (s Selection) Matches(path, extension string) bool {
	if !strings.HasSuffix(path, "."+extension) {
		return false
	}
	root := s.Root
	if root == "" {
		root = DefaultRoot
	}
	prefix := root + "/" + s.Format.Kind() + "/" + s.Lang
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	year, ok := EntryYear(path)
	if !ok {
		return false
	}
	return s.Years.Contains(year)
}
