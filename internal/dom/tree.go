package dom

import (
	"fmt"
	"strings"

	"ewb/internal/source"
)

// Attribute is a key/value pair; keys are lowercase and unique per element.
type Attribute struct {
	Key   string
	Value string
}

// NodeData is the arena record behind a Node.
type NodeData struct {
	Kind     Kind
	Tag      source.StringID // только для элементов
	Attrs    []Attribute     // порядок исходника, ключи уникальны
	Data     string          // текст, тело комментария или doctype
	Span     source.Span
	Parent   NodeID
	Children []NodeID
}

type Hints struct{ Nodes uint }

// Tree owns every node of one parsed document. The synthetic root is
// allocated by NewTree and never has a parent.
//
// A Tree is mutated only by its builder; once built it is read-only and
// queries may run from several goroutines.
type Tree struct {
	Nodes   *Arena[NodeData]
	Strings *source.Interner
	File    source.FileID
	root    NodeID
}

func NewTree(file source.FileID, hints Hints) *Tree {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 6
	}
	t := &Tree{
		Nodes:   NewArena[NodeData](hints.Nodes),
		Strings: source.NewInterner(),
		File:    file,
	}
	t.root = NodeID(t.Nodes.Allocate(NodeData{
		Kind: KindDocument,
		Span: source.Span{File: file},
	}))
	return t
}

// Root returns the synthetic document node.
func (t *Tree) Root() Node { return Node{tree: t, id: t.root} }

func (t *Tree) RootID() NodeID { return t.root }

// Len counts nodes including the root.
func (t *Tree) Len() uint32 { return t.Nodes.Len() }

func (t *Tree) Get(id NodeID) *NodeData {
	return t.Nodes.Get(uint32(id))
}

// Node wraps id into a handle; an unknown id yields the zero Node.
func (t *Tree) Node(id NodeID) Node {
	if t.Get(id) == nil {
		return Node{}
	}
	return Node{tree: t, id: id}
}

// NewElement allocates a detached element. tag must already be lowercase.
func (t *Tree) NewElement(tag string, attrs []Attribute, sp source.Span) NodeID {
	return NodeID(t.Nodes.Allocate(NodeData{
		Kind:  KindElement,
		Tag:   t.Strings.Intern(tag),
		Attrs: attrs,
		Span:  sp,
	}))
}

func (t *Tree) NewText(text string, sp source.Span) NodeID {
	return NodeID(t.Nodes.Allocate(NodeData{Kind: KindText, Data: text, Span: sp}))
}

func (t *Tree) NewComment(body string, sp source.Span) NodeID {
	return NodeID(t.Nodes.Allocate(NodeData{Kind: KindComment, Data: body, Span: sp}))
}

func (t *Tree) NewDoctype(body string, sp source.Span) NodeID {
	return NodeID(t.Nodes.Allocate(NodeData{Kind: KindDoctype, Data: body, Span: sp}))
}

// AppendChild attaches a detached node as the last child of parent.
// Нарушение инвариантов дерева — ошибка программиста, поэтому panic.
func (t *Tree) AppendChild(parent, child NodeID) {
	p, c := t.Get(parent), t.Get(child)
	switch {
	case p == nil || c == nil:
		panic(fmt.Sprintf("dom: append %d to %d: unknown node", child, parent))
	case c.Parent.IsValid() || child == t.root:
		panic(fmt.Sprintf("dom: node %d already attached", child))
	case p.Kind != KindElement && p.Kind != KindDocument:
		panic(fmt.Sprintf("dom: %s node %d cannot have children", p.Kind, parent))
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// LastChild returns the last child of id or NoNodeID.
func (t *Tree) LastChild(id NodeID) NodeID {
	n := t.Get(id)
	if n == nil || len(n.Children) == 0 {
		return NoNodeID
	}
	return n.Children[len(n.Children)-1]
}

// ExtendText appends parts to an existing text node in one copy and widens its span.
func (t *Tree) ExtendText(id NodeID, sp source.Span, parts ...string) {
	n := t.Get(id)
	if n == nil || n.Kind != KindText {
		panic(fmt.Sprintf("dom: node %d is not a text node", id))
	}
	size := len(n.Data)
	for _, p := range parts {
		size += len(p)
	}
	var sb strings.Builder
	sb.Grow(size)
	sb.WriteString(n.Data)
	for _, p := range parts {
		sb.WriteString(p)
	}
	n.Data = sb.String()
	n.Span = n.Span.Cover(sp)
}
