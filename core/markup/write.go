package markup

import (
	"bytes"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/encoding"
)

// FormatOptions controls XML serialization behavior.
type FormatOptions struct {
	Indent string // Indentation string (e.g., "  " or "\t")
}

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Serialize renders the tree rooted at root as an XML document with an
// XML declaration. Elements that contain any text child are written
// inline so mixed content is never re-indented or padded; element-only
// containers are pretty-printed.
func Serialize(root *Element, opts FormatOptions) []byte {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	writeElement(&buf, root, 0, opts.Indent)
	return buf.Bytes()
}

func writeElement(w *bytes.Buffer, e *Element, depth int, indent string) {
	writeIndent(w, depth, indent)
	writeOpenTag(w, e)

	if len(e.Children) == 0 {
		w.WriteString("/>\n")
		return
	}
	w.WriteString(">")

	if hasTextChild(e) {
		// Mixed content: character data is significant, keep it verbatim.
		for _, child := range e.Children {
			writeInline(w, child)
		}
	} else {
		w.WriteString("\n")
		for _, child := range e.Children {
			writeElement(w, child.(*Element), depth+1, indent)
		}
		writeIndent(w, depth, indent)
	}

	w.WriteString("</")
	w.WriteString(e.Tag)
	w.WriteString(">\n")
}

// writeInline renders a node without any indentation or added whitespace.
func writeInline(w *bytes.Buffer, n Node) {
	switch v := n.(type) {
	case Text:
		w.WriteString(encoding.EscapeXMLText(string(v)))
	case *Element:
		writeOpenTag(w, v)
		if len(v.Children) == 0 {
			w.WriteString("/>")
			return
		}
		w.WriteString(">")
		for _, child := range v.Children {
			writeInline(w, child)
		}
		w.WriteString("</")
		w.WriteString(v.Tag)
		w.WriteString(">")
	}
}

func writeOpenTag(w *bytes.Buffer, e *Element) {
	w.WriteString("<")
	w.WriteString(e.Tag)
	for _, attr := range e.Attrs {
		w.WriteString(" ")
		w.WriteString(attr.Name)
		w.WriteString("=\"")
		w.WriteString(encoding.EscapeXMLAttr(attr.Value))
		w.WriteString("\"")
	}
}

func hasTextChild(e *Element) bool {
	for _, child := range e.Children {
		if _, ok := child.(Text); ok {
			return true
		}
	}
	return false
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}
