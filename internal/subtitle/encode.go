package subtitle

import (
	"strings"
)

// Encode converts a parsed document to the requested text encoding.
func Encode(doc *Document, format Format) string {
	switch format {
	case FormatUPOS:
		return encodeTagged(doc, false)
	case FormatLemma:
		return encodeTagged(doc, true)
	case FormatViz:
		return encodeViz(doc)
	default:
		return encodeText(doc)
	}
}

// encodeText serializes the document's character data in document order,
// dropping meta subtrees.
func encodeText(doc *Document) string {
	var b strings.Builder
	var write func(n *Node)
	write = func(n *Node) {
		for _, c := range n.Content {
			if c.Child != nil {
				if c.Child.Tag == "meta" {
					continue
				}
				write(c.Child)
				continue
			}
			b.WriteString(c.Text)
		}
	}
	write(doc.Root)
	return b.String()
}

// encodeTagged emits word_UPOS pairs with a line break at every sentence
// boundary. With lemma set, the word's dictionary form replaces its
// surface form.
func encodeTagged(doc *Document, lemma bool) string {
	var b strings.Builder
	doc.Walk(func(n *Node) bool {
		switch n.Tag {
		case "s":
			b.WriteString("\n")
		case "w":
			word := strings.TrimSpace(n.Text())
			if lemma {
				word = n.Attr("lemma")
			}
			b.WriteString(word)
			b.WriteString("_")
			b.WriteString(n.Attr("upos"))
			b.WriteString(" ")
		}
		return true
	})
	return b.String()
}

// encodeViz emits one "[timestamp] sentence" line per sentence whose first
// child element is a time node. Timestamps are normalized to a sortable
// numeric token.
func encodeViz(doc *Document) string {
	var lines []string
	doc.Walk(func(n *Node) bool {
		if n.Tag != "s" {
			return true
		}
		children := n.Children()
		if len(children) > 0 && children[0].Tag == "time" {
			stamp := NormalizeTimestamp(children[0].Attr("value"))
			text := strings.ReplaceAll(n.Text(), "\n", "")
			lines = append(lines, "["+stamp+"] "+text)
		}
		return true
	})
	return strings.Join(lines, "\n")
}

// NormalizeTimestamp turns an "HH:MM:SS,mmm" subtitle timestamp into a
// sortable token: colons removed, the millisecond comma becomes a decimal
// point ("00:01:02,345" -> "000102.345").
func NormalizeTimestamp(value string) string {
	value = strings.ReplaceAll(value, ":", "")
	return strings.ReplaceAll(value, ",", ".")
}
