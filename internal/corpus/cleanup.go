package corpus

import (
	"regexp"
	"strings"
	"unicode"

	"subclean/internal/subtitle"
)

// The cleanup rules run in order, each against the full result of the
// previous one. Order matters: sentence breaking (rule 4) must see text
// with markup and links already gone, and whitespace collapsing (rules 6
// and 7) must run last.
var cleanupRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)<.*?>`), ""},                       // residual tag markup
	{regexp.MustCompile(`(?i)http.*?([\s\]]|$)`), ""},           // links
	{regexp.MustCompile(`(?i)\s\(.*?\)`), ""},                   // parenthesized asides
	{regexp.MustCompile(`(?i)(\S{2,})[.!?:;]+(\s|$)`), "${1}\n"}, // sentence breaks
	{regexp.MustCompile(`[-–—/']`), " "},                        // dashes, slashes, apostrophes
	{regexp.MustCompile(`\s*\n\s*`), "\n"},                      // empty and whitespace-only lines
	{regexp.MustCompile(`\s{2,}`), " "},                         // excessive spaces
}

// Clean applies the punctuation and markup cleanup pipeline to txt, then
// filters the result down to alphanumerics and whitespace. The tagged
// formats additionally keep underscores, which separate word and tag.
// The pipeline is idempotent.
func Clean(txt string, format subtitle.Format) string {
	for _, rule := range cleanupRules {
		txt = rule.pattern.ReplaceAllString(txt, rule.repl)
	}

	keepUnderscore := format.KeepsUnderscore()
	var b strings.Builder
	b.Grow(len(txt))
	for _, r := range txt {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case keepUnderscore && r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
