package dom

import (
	"ewb/internal/source"
)

// Node is a read-only handle to a node inside a Tree.
// The zero Node is valid and behaves like an empty, childless node.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) data() *NodeData {
	if n.tree == nil {
		return nil
	}
	return n.tree.Get(n.id)
}

// IsZero reports whether n refers to no node.
func (n Node) IsZero() bool { return n.data() == nil }

func (n Node) ID() NodeID { return n.id }

func (n Node) Tree() *Tree { return n.tree }

func (n Node) Kind() Kind {
	d := n.data()
	if d == nil {
		return KindInvalid
	}
	return d.Kind
}

func (n Node) IsElement() bool { return n.Kind() == KindElement }

func (n Node) IsText() bool { return n.Kind() == KindText }

// TagName returns the lowercase element name, "" for text nodes and
// DocumentName, CommentName or DoctypeName for the other kinds.
func (n Node) TagName() string {
	d := n.data()
	if d == nil {
		return ""
	}
	switch d.Kind {
	case KindElement:
		return n.tree.Strings.MustLookup(d.Tag)
	case KindDocument:
		return DocumentName
	case KindComment:
		return CommentName
	case KindDoctype:
		return DoctypeName
	default:
		return ""
	}
}

// Attributes returns a fresh map of the element's attributes; nil for non-elements.
func (n Node) Attributes() map[string]string {
	d := n.data()
	if d == nil || d.Kind != KindElement {
		return nil
	}
	out := make(map[string]string, len(d.Attrs))
	for _, a := range d.Attrs {
		out[a.Key] = a.Value
	}
	return out
}

// AttrList returns attributes in source order. The slice must not be modified.
func (n Node) AttrList() []Attribute {
	d := n.data()
	if d == nil {
		return nil
	}
	return d.Attrs
}

// Attr looks up one attribute; key is matched case-insensitively.
func (n Node) Attr(key string) (string, bool) {
	d := n.data()
	if d == nil {
		return "", false
	}
	key = lower(key)
	for _, a := range d.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns the direct children in document order.
func (n Node) Children() []Node {
	d := n.data()
	if d == nil || len(d.Children) == 0 {
		return nil
	}
	out := make([]Node, len(d.Children))
	for i, id := range d.Children {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}

func (n Node) ChildCount() int {
	d := n.data()
	if d == nil {
		return 0
	}
	return len(d.Children)
}

// Parent returns the zero Node for the root.
func (n Node) Parent() Node {
	d := n.data()
	if d == nil || !d.Parent.IsValid() {
		return Node{}
	}
	return Node{tree: n.tree, id: d.Parent}
}

// Data returns the literal content of text, comment and doctype nodes.
func (n Node) Data() string {
	d := n.data()
	if d == nil {
		return ""
	}
	return d.Data
}

func (n Node) Span() source.Span {
	d := n.data()
	if d == nil {
		return source.Span{}
	}
	return d.Span
}

func (n Node) String() string {
	switch n.Kind() {
	case KindText:
		return "text"
	case KindInvalid:
		return "<nil>"
	default:
		return "<" + n.TagName() + ">"
	}
}

func lower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
