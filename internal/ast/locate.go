package ast

import "bennypowers.dev/sls/internal/symbols"

// CheckOffset validates offset against a source of the given length
func CheckOffset(offset, length int) error {
	if offset < 0 || offset > length {
		return symbols.NewOffsetOutOfRangeError(offset, length)
	}
	return nil
}

// Locate returns the innermost node containing offset, or nil when the
// offset lies outside the root. Child spans are inclusive at the start and
// exclusive at the end, and children are tried left to right so the
// earlier sibling wins when spans overlap. The root's end is inclusive so
// an end-of-file offset still resolves to the root.
func Locate(root Node, offset int) Node {
	if !inRoot(root, offset) {
		return nil
	}
	node := root
	for {
		child := childAt(node, offset)
		if child == nil {
			return node
		}
		node = child
	}
}

func inRoot(root Node, offset int) bool {
	return root != nil && offset >= root.Start() && offset <= root.End()
}

// childAt returns the first child whose span contains offset
func childAt(n Node, offset int) Node {
	for _, child := range n.Children() {
		if offset >= child.Start() && offset < child.End() {
			return child
		}
	}
	return nil
}
