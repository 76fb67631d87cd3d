// Package corpus builds flat text corpora from stripped subtitle archives:
// punctuation cleanup plus concatenation into one newline-delimited file.
package corpus
