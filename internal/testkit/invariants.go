package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"ewb/internal/dom"
	"ewb/internal/source"
)

// CheckTreeInvariants runs the structural checks every built tree must pass:
// 1) the root is the only document node and has no parent
// 2) every other node is reachable from the root exactly once and its Parent matches
// 3) siblings appear in document order and spans stay inside the document
// 4) attribute keys are lowercase and unique per element
// 5) only the root and elements have children
func CheckTreeInvariants(tree *dom.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Get(tree.RootID())
	if root == nil || root.Kind != dom.KindDocument {
		return fmt.Errorf("root is not a document node")
	}
	if root.Parent.IsValid() {
		return fmt.Errorf("root has parent %d", root.Parent)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	seen := make([]bool, tree.Len()+1)
	seen[tree.RootID()] = true
	visited := uint32(1)
	stack := []dom.NodeID{tree.RootID()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := tree.Get(id)

		if len(n.Children) > 0 && n.Kind != dom.KindElement && n.Kind != dom.KindDocument {
			return fmt.Errorf("%s node %d has %d children", n.Kind, id, len(n.Children))
		}
		if err := checkAttrs(id, n); err != nil {
			return err
		}

		var prevStart uint32
		for i, childID := range n.Children {
			child := tree.Get(childID)
			if child == nil {
				return fmt.Errorf("node %d has unknown child %d", id, childID)
			}
			if seen[childID] {
				return fmt.Errorf("node %d reachable twice", childID)
			}
			seen[childID] = true
			visited++
			if child.Kind == dom.KindDocument {
				return fmt.Errorf("document node %d below the root", childID)
			}
			if child.Parent != id {
				return fmt.Errorf("node %d: parent=%d, but listed under %d", childID, child.Parent, id)
			}
			sp := child.Span
			if sp.File != sf.ID {
				return fmt.Errorf("node %d span file mismatch: got=%d want=%d", childID, sp.File, sf.ID)
			}
			if sp.End > lenContent || sp.Start > sp.End {
				return fmt.Errorf("node %d span %v outside document of %d bytes", childID, sp, lenContent)
			}
			if i > 0 && sp.Start < prevStart {
				return fmt.Errorf("node %d starts at %d before previous sibling at %d", childID, sp.Start, prevStart)
			}
			prevStart = sp.Start
			stack = append(stack, childID)
		}
	}
	if visited != tree.Len() {
		return fmt.Errorf("%d of %d nodes reachable from the root", visited, tree.Len())
	}
	return nil
}

func checkAttrs(id dom.NodeID, n *dom.NodeData) error {
	if n.Kind != dom.KindElement && len(n.Attrs) > 0 {
		return fmt.Errorf("%s node %d carries attributes", n.Kind, id)
	}
	keys := make(map[string]struct{}, len(n.Attrs))
	for _, a := range n.Attrs {
		if strings.ContainsFunc(a.Key, isASCIIUpper) {
			return fmt.Errorf("node %d: attribute key %q is not lowercase", id, a.Key)
		}
		if _, dup := keys[a.Key]; dup {
			return fmt.Errorf("node %d: duplicate attribute %q", id, a.Key)
		}
		keys[a.Key] = struct{}{}
	}
	return nil
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
