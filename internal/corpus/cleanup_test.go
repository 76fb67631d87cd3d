package corpus

import (
	"strings"
	"testing"

	"subclean/internal/subtitle"
)

func TestCleanStripsMarkupAndPunctuation(t *testing.T) {
	in := "Hello there. <i>General</i> Kenobi!\n"
	got := Clean(in, subtitle.FormatText)
	want := "Hello there\nGeneral Kenobi\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCleanRemovesLinks(t *testing.T) {
	got := Clean("subs by http://example.com/subs every week", subtitle.FormatText)
	if strings.Contains(got, "example") {
		t.Fatalf("link survived cleanup: %q", got)
	}
	if !strings.Contains(got, "subs by") || !strings.Contains(got, "every week") {
		t.Fatalf("surrounding text damaged: %q", got)
	}
}

func TestCleanRemovesParentheticalAsides(t *testing.T) {
	got := Clean("wait (whispers) go", subtitle.FormatText)
	if strings.Contains(got, "whispers") {
		t.Fatalf("aside survived: %q", got)
	}
}

func TestCleanBreaksSentences(t *testing.T) {
	got := Clean("First one. Second one? Third one", subtitle.FormatText)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "First one" || lines[1] != "Second one" || lines[2] != "Third one" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestCleanShortRunKeepsPunctuationBoundary(t *testing.T) {
	// A single character before the punctuation is not a sentence boundary.
	got := Clean("a. b", subtitle.FormatText)
	if strings.Contains(got, "\n") {
		t.Fatalf("unexpected line break: %q", got)
	}
}

func TestCleanReplacesDashesAndApostrophes(t *testing.T) {
	got := Clean("well-known — it's complicated/simple", subtitle.FormatText)
	for _, banned := range []string{"-", "—", "'", "/"} {
		if strings.Contains(got, banned) {
			t.Fatalf("%q survived cleanup: %q", banned, got)
		}
	}
	if !strings.Contains(got, "well known") {
		t.Fatalf("dash not replaced with space: %q", got)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("one  two\n  \nthree", subtitle.FormatText)
	if strings.Contains(got, "  ") {
		t.Fatalf("double space survived: %q", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Fatalf("empty line survived: %q", got)
	}
}

func TestCleanKeepsUnderscoreForTaggedFormats(t *testing.T) {
	in := "cat_NOUN sat_VERB \n"
	if got := Clean(in, subtitle.FormatUPOS); !strings.Contains(got, "cat_NOUN") {
		t.Fatalf("underscore removed for upos: %q", got)
	}
	if got := Clean(in, subtitle.FormatText); strings.Contains(got, "_") {
		t.Fatalf("underscore kept for txt: %q", got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Hello there. <i>General</i> Kenobi! (dramatic pause) See http://x.io/y now.\n",
		"cat_NOUN sat_VERB \nwell-known words here.\n",
		"Plain line without punctuation\n",
	}
	for _, in := range inputs {
		for _, format := range []subtitle.Format{subtitle.FormatText, subtitle.FormatUPOS} {
			once := Clean(in, format)
			twice := Clean(once, format)
			if once != twice {
				t.Errorf("pipeline not idempotent for %q (%s):\nonce:  %q\ntwice: %q", in, format, once, twice)
			}
		}
	}
}

func TestCleanOrderingTagThenSentence(t *testing.T) {
	// Tag removal runs before sentence breaking, so punctuation adjacent
	// to markup still breaks sentences.
	got := Clean("He left. <br>She stayed.", subtitle.FormatText)
	if !strings.Contains(got, "He left\n") {
		t.Fatalf("sentence break lost after tag removal: %q", got)
	}
}
