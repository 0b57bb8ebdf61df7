// Package markup provides an immutable-by-convention markup tree used as
// the interchange structure between the annotation projector and the TEI
// document assembler. A tree is built once, then only read.
package markup

import "strings"

// Node is either a Text run or an *Element. The interface is closed.
type Node interface {
	node()
}

// Text is a raw character-data node. It is escaped at serialization time,
// never stored escaped.
type Text string

func (Text) node() {}

// Attr is a single attribute. Attributes keep insertion order so that
// serialization is byte-deterministic.
type Attr struct {
	Name  string
	Value string
}

// Element is a markup element with ordered attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

func (*Element) node() {}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// SetAttr sets an attribute, replacing an existing one of the same name
// in place so attribute order stays stable.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Append adds child nodes.
func (e *Element) Append(children ...Node) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// AppendText adds a text child unless s is empty.
func (e *Element) AppendText(s string) *Element {
	if s != "" {
		e.Children = append(e.Children, Text(s))
	}
	return e
}

// PlainText returns the concatenated text content of the element's
// subtree in document order, ignoring all markup.
func (e *Element) PlainText() string {
	var sb strings.Builder
	collectText(&sb, e)
	return sb.String()
}

// Fragment is the ordered node sequence produced for one text line.
type Fragment []Node

// PlainText returns the concatenated text content of all nodes in the
// fragment, ignoring markup.
func (f Fragment) PlainText() string {
	var sb strings.Builder
	for _, n := range f {
		collectText(&sb, n)
	}
	return sb.String()
}

// Empty reports whether the fragment holds no nodes.
func (f Fragment) Empty() bool { return len(f) == 0 }

func collectText(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case Text:
		sb.WriteString(string(v))
	case *Element:
		for _, c := range v.Children {
			collectText(sb, c)
		}
	}
}
