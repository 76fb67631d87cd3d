package subtitle

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Node is one element of a parsed subtitle document. Content preserves the
// document order of character data and child elements.
type Node struct {
	Tag     string
	Attrs   map[string]string
	Content []Content
}

// Content is either a child element or a run of character data.
type Content struct {
	Child *Node
	Text  string
}

// Document is the best-effort parse of one archive entry. Root is a
// synthetic node wrapping whatever top-level content was recovered.
type Document struct {
	Root *Node
}

// Parse scans data as XML in recovery mode. Subtitle files are frequently
// malformed, so parsing never fails: the decoder runs non-strict, the
// element stack absorbs missing end tags, and scanning stops at the first
// unrecoverable token while keeping everything read so far. Input from
// which nothing can be recovered yields an empty document.
func Parse(data []byte) *Document {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	root := &Node{}
	stack := []*Node{root}
	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF or markup the decoder cannot recover from;
			// either way the partial tree stands.
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{Tag: t.Name.Local, Attrs: attrMap(t.Attr)}
			parent := stack[len(stack)-1]
			parent.Content = append(parent.Content, Content{Child: child})
			stack = append(stack, child)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			parent := stack[len(stack)-1]
			parent.Content = append(parent.Content, Content{Text: string(t)})
		}
	}
	return &Document{Root: root}
}

func attrMap(attrs []xml.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

// Attr returns the named attribute value, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// Text returns the node's character data in document order, including
// descendant elements.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.Content {
		if c.Child != nil {
			c.Child.writeText(b)
			continue
		}
		b.WriteString(c.Text)
	}
}

// Children returns the node's child elements in document order.
func (n *Node) Children() []*Node {
	var kids []*Node
	for _, c := range n.Content {
		if c.Child != nil {
			kids = append(kids, c.Child)
		}
	}
	return kids
}

// Walk visits every element of the document in document order. Returning
// false from visit skips the node's subtree.
func (d *Document) Walk(visit func(*Node) bool) {
	walk(d.Root, visit)
}

func walk(n *Node, visit func(*Node) bool) {
	for _, c := range n.Content {
		if c.Child == nil {
			continue
		}
		if visit(c.Child) {
			walk(c.Child, visit)
		}
	}
}
