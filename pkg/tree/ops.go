package tree

import (
	"fmt"

	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/bloom"
	"github.com/flier/cssmatch/pkg/zc"
)

// CreateElement appends a new element node as the last child of parent,
// computing its depth and ancestor filter from parent per spec.md §3. If
// parent is [Root], the node becomes a top-level element with depth 0.
func (t *FlatTree) CreateElement(tag atom.Id, parent NodeId) NodeId {
	id := t.append(Element, parent)
	t.tag.Store(int(id), tag)

	if t.docFilter != nil && tag != atom.Null {
		t.docFilter.Add(t.tagHash(tag))
	}

	return id
}

// CreateText appends a new text node as the last child of parent, with an
// empty ancestor filter - text nodes are never selector targets beyond
// :empty consideration.
func (t *FlatTree) CreateText(parent NodeId, text []byte) NodeId {
	id := t.append(Text, parent)
	t.ancestorFilter.Store(int(id), bloom.Empty())
	view := zc.Raw(t.text.Len(), len(text))
	t.text = t.text.Append(t.a, text...)
	t.textView.Store(int(id), view)
	return id
}

// SetId sets node's id atom. Per spec.md §4.3, updating the id after
// descendants already exist does not retroactively update their ancestor
// filters - callers are expected to call this immediately after
// [FlatTree.CreateElement], before creating any children.
func (t *FlatTree) SetId(node NodeId, id atom.Id) {
	t.id.Store(int(node), id)
	t.flag.Store(int(node), t.flag.Load(int(node))|hasId)

	if t.docFilter != nil && id != atom.Null {
		t.docFilter.Add(t.tagHash(id))
	}
}

// SetClasses sets node's class list, rejecting more than [MaxClasses]
// classes. Same retroactivity caveat as [FlatTree.SetId]. Unlike
// [FlatTree.AddAttribute], a node's classes are always written by one
// call and one Append, so there is no cross-node interleaving to guard
// against here - the precondition only bites a per-call, multi-append
// arena like the attribute list.
func (t *FlatTree) SetClasses(node NodeId, classes []atom.Id) error {
	if len(classes) > MaxClasses {
		return fmt.Errorf("%w: %d classes", ErrTooManyClasses, len(classes))
	}

	view := zc.Raw(t.classes.Len(), len(classes))
	t.classes = t.classes.Append(t.a, classes...)
	t.classesView.Store(int(node), view)

	if len(classes) > 0 {
		t.flag.Store(int(node), t.flag.Load(int(node))|hasClasses)
	}

	if t.docFilter != nil {
		for _, c := range classes {
			t.docFilter.Add(t.tagHash(c))
		}
	}

	return nil
}

// AddAttribute appends (name, value) to node's attribute list.
//
// node's attributes are addressed by one (start, count) view into a
// single shared arena, so every AddAttribute call for a given node must
// happen before any other node's first AddAttribute call.
// [FlatTree.SetClasses] and [FlatTree.CreateText] need no such
// precondition, since each writes its range in one call. Interleaving two nodes' calls
// (add attr to A, add attr to B, add another attr to A) would otherwise
// silently widen A's view across B's attribute and corrupt both nodes'
// [FlatTree.Attributes]; this is checked for and reported as
// ErrAttributesNotConsecutive instead of producing a corrupt tree. A
// value is still appended to the text arena before the check, since the
// caller-visible contract is "this call either lands cleanly or is
// rejected," not "failed calls are free."
func (t *FlatTree) AddAttribute(node NodeId, name atom.Id, value []byte) error {
	valueView := zc.Raw(t.text.Len(), len(value))
	t.text = t.text.Append(t.a, value...)

	existing := t.attrsView.Load(int(node))
	start := existing.Start()
	if existing.Len() == 0 {
		start = t.attrs.Len()
	} else if start+existing.Len() != t.attrs.Len() {
		return fmt.Errorf("%w: node %d", ErrAttributesNotConsecutive, node)
	}

	t.attrs = t.attrs.AppendOne(t.a, Attribute{Name: name, Value: valueView})
	t.attrsView.Store(int(node), zc.Raw(start, existing.Len()+1))
	return nil
}

// Tag returns node's tag atom, [atom.Null] for non-element nodes.
func (t *FlatTree) Tag(node NodeId) atom.Id { return t.tag.Load(int(node)) }

// Id returns node's id atom, [atom.Null] if absent.
func (t *FlatTree) Id(node NodeId) atom.Id { return t.id.Load(int(node)) }

// Parent returns node's parent, 0 if node is the root or unattached.
func (t *FlatTree) Parent(node NodeId) NodeId { return t.parent.Load(int(node)) }

// FirstChild returns node's first child, 0 if none.
func (t *FlatTree) FirstChild(node NodeId) NodeId { return t.firstChild.Load(int(node)) }

// NextSibling returns node's next sibling, 0 if node is the last child.
func (t *FlatTree) NextSibling(node NodeId) NodeId { return t.nextSibling.Load(int(node)) }

// PrevSibling returns node's previous sibling, 0 if node is the first child.
func (t *FlatTree) PrevSibling(node NodeId) NodeId { return t.prevSibling.Load(int(node)) }

// AncestorFilter returns the union of {tag, id, class} hashes of every
// strict ancestor of node.
func (t *FlatTree) AncestorFilter(node NodeId) bloom.Filter {
	return t.ancestorFilter.Load(int(node))
}

// Depth returns node's depth, 0 at the document node.
func (t *FlatTree) Depth(node NodeId) uint16 { return t.depth.Load(int(node)) }

// CheckedNodeType is NodeType, but reports false instead of panicking
// for a node id this tree never allocated - the one case where an
// index isn't already known-good, a NodeId crossing the ABI boundary
// from a host.
func (t *FlatTree) CheckedNodeType(node NodeId) (NodeType, bool) {
	opt := t.nodeType.CheckedLoad(int(node))
	return opt.UnwrapOr(Document), opt.IsSome()
}

// NodeType returns node's type.
func (t *FlatTree) NodeType(node NodeId) NodeType { return t.nodeType.Load(int(node)) }

// IsElement reports whether node is an element node.
func (t *FlatTree) IsElement(node NodeId) bool { return t.nodeType.Load(int(node)) == Element }

// HasId reports whether node has an explicit id set.
func (t *FlatTree) HasId(node NodeId) bool { return t.flag.Load(int(node))&hasId != 0 }

// HasClasses reports whether node has a non-empty class list.
func (t *FlatTree) HasClasses(node NodeId) bool { return t.flag.Load(int(node))&hasClasses != 0 }

// Classes returns node's class list.
func (t *FlatTree) Classes(node NodeId) []atom.Id {
	view := t.classesView.Load(int(node))
	if view.Len() == 0 {
		return nil
	}
	return t.classes.Raw()[view.Start():view.End()]
}

// HasClass reports whether node carries class.
func (t *FlatTree) HasClass(node NodeId, class atom.Id) bool {
	for _, c := range t.Classes(node) {
		if c == class {
			return true
		}
	}
	return false
}

// Attributes returns node's attribute list.
func (t *FlatTree) Attributes(node NodeId) []Attribute {
	view := t.attrsView.Load(int(node))
	if view.Len() == 0 {
		return nil
	}
	return t.attrs.Raw()[view.Start():view.End()]
}

// AttributeValue returns the bytes of the named attribute on node, and
// whether it was present.
func (t *FlatTree) AttributeValue(node NodeId, name atom.Id) ([]byte, bool) {
	for _, a := range t.Attributes(node) {
		if a.Name == name {
			return a.Value.Bytes(t.text.Raw()), true
		}
	}
	return nil, false
}

// TextOf returns node's text payload, for text-like node types.
func (t *FlatTree) TextOf(node NodeId) []byte {
	return t.textView.Load(int(node)).Bytes(t.text.Raw())
}

// IsEmpty reports whether node has no children at all - the DOM notion
// backing the :empty pseudo-class.
func (t *FlatTree) IsEmpty(node NodeId) bool {
	return t.firstChild.Load(int(node)) == 0
}
