package subtitle

import (
	"fmt"
	"strings"
)

// Format selects the text encoding produced from a subtitle document.
type Format string

const (
	// FormatText is plain sentence text with metadata dropped.
	FormatText Format = "txt"
	// FormatUPOS emits word_UPOS pairs, one sentence per line.
	FormatUPOS Format = "upos"
	// FormatLemma emits lemma_UPOS pairs, one sentence per line.
	FormatLemma Format = "lemma"
	// FormatViz emits timestamped sentence lines for alignment work.
	FormatViz Format = "viz"
)

// Formats lists all supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatLemma, FormatUPOS, FormatViz}
}

// ParseFormat validates a user-supplied format selector.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatUPOS:
		return FormatUPOS, nil
	case FormatLemma:
		return FormatLemma, nil
	case FormatViz:
		return FormatViz, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected txt, lemma, upos, or viz)", s)
}

// Extension returns the archive entry extension for the format.
func (f Format) Extension() string {
	return string(f)
}

// Kind returns the subcorpus the format reads from: "parsed" for the
// tagged encodings, "raw" otherwise.
func (f Format) Kind() string {
	switch f {
	case FormatUPOS, FormatLemma:
		return "parsed"
	}
	return "raw"
}

// KeepsUnderscore reports whether the punctuation filter must preserve
// underscores, which the tagged encodings use as the word/tag separator.
func (f Format) KeepsUnderscore() bool {
	return f == FormatUPOS || f == FormatLemma
}
