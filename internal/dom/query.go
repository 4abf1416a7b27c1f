package dom

import (
	"iter"
	"strings"
)

// TextOptions tunes GetTextNodes.
type TextOptions struct {
	// SkipWhitespace drops text nodes made only of HTML whitespace.
	SkipWhitespace bool
}

// NodesOptions tunes GetNodes.
type NodesOptions struct {
	// Prune stops descending into a match, so no result contains another.
	Prune bool
}

type walkAction uint8

const (
	walkContinue walkAction = iota
	walkSkipChildren
	walkStop
)

// walk visits the descendants of n (not n itself) in pre-order.
// Стек явный: глубина дерева ограничена только лимитом билдера.
func (n Node) walk(visit func(Node) walkAction) {
	d := n.data()
	if d == nil {
		return
	}
	stack := make([]NodeID, 0, 16)
	for i := len(d.Children) - 1; i >= 0; i-- {
		stack = append(stack, d.Children[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := Node{tree: n.tree, id: id}
		switch visit(cur) {
		case walkStop:
			return
		case walkSkipChildren:
			continue
		}
		// reverse iteration so that first child is pushed last
		children := n.tree.Get(id).Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Descendants yields every node below n in depth-first pre-order.
func (n Node) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		n.walk(func(cur Node) walkAction {
			if !yield(cur) {
				return walkStop
			}
			return walkContinue
		})
	}
}

// GetTextNodes returns every text node below n in document order,
// whitespace-only ones included.
func (n Node) GetTextNodes() []Node {
	return n.TextNodesWith(TextOptions{})
}

func (n Node) TextNodesWith(opts TextOptions) []Node {
	out := make([]Node, 0)
	n.walk(func(cur Node) walkAction {
		d := cur.data()
		if d.Kind != KindText {
			return walkContinue
		}
		if opts.SkipWhitespace && isBlank(d.Data) {
			return walkContinue
		}
		out = append(out, cur)
		return walkContinue
	})
	return out
}

// GetNodes returns every element below n whose tag name equals tag,
// compared case-insensitively. n itself is never part of the result.
func (n Node) GetNodes(tag string) []Node {
	return n.NodesWith(tag, NodesOptions{})
}

func (n Node) NodesWith(tag string, opts NodesOptions) []Node {
	out := make([]Node, 0)
	if n.tree == nil {
		return out
	}
	tag = lower(tag)
	n.walk(func(cur Node) walkAction {
		if !cur.hasTag(tag) {
			return walkContinue
		}
		out = append(out, cur)
		if opts.Prune {
			return walkSkipChildren
		}
		return walkContinue
	})
	return out
}

// Find returns the first element below n named tag, or the zero Node.
func (n Node) Find(tag string) Node {
	var found Node
	if n.tree == nil {
		return found
	}
	tag = lower(tag)
	n.walk(func(cur Node) walkAction {
		if cur.hasTag(tag) {
			found = cur
			return walkStop
		}
		return walkContinue
	})
	return found
}

// Text concatenates every text node below n; for a text node it is its own content.
func (n Node) Text() string {
	if n.IsText() {
		return n.Data()
	}
	var sb strings.Builder
	n.walk(func(cur Node) walkAction {
		if d := cur.data(); d.Kind == KindText {
			sb.WriteString(d.Data)
		}
		return walkContinue
	})
	return sb.String()
}

func (n Node) hasTag(lowerTag string) bool {
	d := n.data()
	return d.Kind == KindElement && n.tree.Strings.MustLookup(d.Tag) == lowerTag
}

// isBlank — только пробельные символы HTML (NBSP пробелом не считается).
func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t\n\f\r") == ""
}
