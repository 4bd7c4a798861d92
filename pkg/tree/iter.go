package tree

import "iter"

// Children returns the ordered forward sequence of node's children. The
// sequence is lazy, finite and not restartable, per spec.md §4.3 -
// callers that need to walk twice call Children(node) again.
func (t *FlatTree) Children(node NodeId) iter.Seq[NodeId] {
	return func(yield func(NodeId) bool) {
		for cur := t.firstChild.Load(int(node)); cur != 0; cur = t.nextSibling.Load(int(cur)) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Ancestors returns the bottom-up sequence of node's strict ancestors,
// starting at node's parent. The synthetic document node ([Root]) is
// never yielded: it is not a real ancestor, so a top-level element (whose
// parent is Root) has an empty ancestor sequence.
func (t *FlatTree) Ancestors(node NodeId) iter.Seq[NodeId] {
	return func(yield func(NodeId) bool) {
		for cur := t.parent.Load(int(node)); cur != Root; cur = t.parent.Load(int(cur)) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Walk visits root and every descendant in pre-order, calling fn on each.
// Walk stops early if fn returns false. This is not part of spec.md's
// contract; it is a convenience built from [FlatTree.Children] for
// producers and tests that want to traverse a whole subtree at once.
func (t *FlatTree) Walk(root NodeId, fn func(NodeId) bool) {
	var visit func(NodeId) bool
	visit = func(n NodeId) bool {
		if !fn(n) {
			return false
		}
		for child := range t.Children(n) {
			if !visit(child) {
				return false
			}
		}
		return true
	}
	visit(root)
}
