// Package tree implements the flat, structure-of-arrays document tree:
// every per-node field lives in its own parallel column, every
// cross-entity reference is an integer node index, and every node's
// ancestor Bloom filter is computed once, at insertion, from its parent's.
package tree

import (
	"errors"
	"fmt"
	"iter"

	"github.com/flier/cssmatch/pkg/arena"
	"github.com/flier/cssmatch/pkg/arena/slice"
	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/bloom"
	"github.com/flier/cssmatch/pkg/zc"
)

// NodeId is an index into a FlatTree's columns. 0 is always the synthetic
// document node and is never returned as a match.
type NodeId uint32

// Root is the synthetic document node every FlatTree is created with.
const Root NodeId = 0

// MaxClasses is the largest number of classes a single node may carry.
const MaxClasses = 255

// ErrTooManyClasses is returned by [FlatTree.SetClasses] when asked to set
// more than [MaxClasses] classes on one node.
var ErrTooManyClasses = errors.New("tree: too many classes")

// ErrAttributesNotConsecutive is returned by [FlatTree.AddAttribute] when
// a node's attribute calls were interleaved with another node's.
var ErrAttributesNotConsecutive = errors.New("tree: attribute additions for a node must be consecutive")

// NodeType classifies a node; spec.md §3 "node_type".
type NodeType uint8

const (
	Document NodeType = iota
	Element
	Text
	CData
	Comment
	Doctype
	Fragment
)

func (t NodeType) String() string {
	switch t {
	case Document:
		return "document"
	case Element:
		return "element"
	case Text:
		return "text"
	case CData:
		return "cdata"
	case Comment:
		return "comment"
	case Doctype:
		return "doctype"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("NodeType(%d)", t)
	}
}

// flags are the per-node boolean bits of spec.md §3.
type flags uint8

const (
	hasId flags = 1 << iota
	hasClasses
	hasStyle
	inShadow
)

// Attribute is one (name, value) pair in the tree-wide attribute arena.
type Attribute struct {
	Name  atom.Id
	Value zc.View
}

// FlatTree is the SoA document tree: every field below is a column,
// indexed by [NodeId], charged to one shared [arena.Allocator].
type FlatTree struct {
	a arena.Allocator

	tag            slice.Slice[atom.Id]
	id             slice.Slice[atom.Id]
	parent         slice.Slice[NodeId]
	firstChild     slice.Slice[NodeId]
	nextSibling    slice.Slice[NodeId]
	prevSibling    slice.Slice[NodeId]
	lastChild      slice.Slice[NodeId] // O(1) append-as-last-child bookkeeping; not part of the public contract
	ancestorFilter slice.Slice[bloom.Filter]
	nodeType       slice.Slice[NodeType]
	depth          slice.Slice[uint16]
	flag           slice.Slice[flags]
	classesView    slice.Slice[zc.View]
	attrsView      slice.Slice[zc.View]
	textView       slice.Slice[zc.View]

	classes slice.Slice[atom.Id]   // global append-only class storage
	attrs   slice.Slice[Attribute] // global append-only attribute storage
	text    slice.Slice[byte]      // global append-only text/attribute-value bytes

	hashOf func(atom.Id) uint32

	docFilter *bloom.DocumentFilter
}

// WithAtomTable wires the ancestor-Bloom computation to table's content
// hashes. A FlatTree built without calling this falls back to treating
// each atom id as its own hash, which preserves structural correctness
// but not the spec's FNV-1a hash consistency - call this before creating
// any element with a tag, id or class.
func (t *FlatTree) WithAtomTable(table *atom.Table) *FlatTree {
	t.hashOf = table.HashOf
	return t
}

// WithDocumentFilter wires df as the tree's document-wide pre-filter:
// every tag, id and class hash a subsequent [FlatTree.CreateElement],
// [FlatTree.SetId] or [FlatTree.SetClasses] call introduces is added to
// df, per spec.md §2's session-wide pre-filter. A tree built without
// calling this simply never populates a document filter, which is
// correct (just unfiltered) since the VM's per-node ancestor filter
// still gives exact results on its own.
func (t *FlatTree) WithDocumentFilter(df *bloom.DocumentFilter) *FlatTree {
	t.docFilter = df
	return t
}

// New creates a FlatTree containing only the synthetic document root at
// [Root], charging all storage to a.
func New(a arena.Allocator) *FlatTree {
	t := &FlatTree{
		a:              a,
		tag:            slice.Make[atom.Id](a, 1),
		id:             slice.Make[atom.Id](a, 1),
		parent:         slice.Make[NodeId](a, 1),
		firstChild:     slice.Make[NodeId](a, 1),
		nextSibling:    slice.Make[NodeId](a, 1),
		prevSibling:    slice.Make[NodeId](a, 1),
		lastChild:      slice.Make[NodeId](a, 1),
		ancestorFilter: slice.Make[bloom.Filter](a, 1),
		nodeType:       slice.Make[NodeType](a, 1),
		depth:          slice.Make[uint16](a, 1),
		flag:           slice.Make[flags](a, 1),
		classesView:    slice.Make[zc.View](a, 1),
		attrsView:      slice.Make[zc.View](a, 1),
		textView:       slice.Make[zc.View](a, 1),
	}

	t.nodeType.Store(0, Document)

	return t
}

// NodeCount returns the number of nodes in the tree, including the
// document root.
func (t *FlatTree) NodeCount() int { return t.tag.Len() }

func (t *FlatTree) append(nodeType NodeType, parent NodeId) NodeId {
	id := NodeId(t.tag.Len())

	// parent == Root means "no real parent": per spec.md §4.3 the node
	// becomes a top-level element with depth 0, and the synthetic
	// document node contributes nothing to any ancestor filter.
	var depth uint16
	var filter bloom.Filter

	if parent != Root {
		depth = t.depth.Load(int(parent)) + 1
		filter = t.ancestorFilter.Load(int(parent)).Union(t.nodeAncestorContribution(parent))
	}

	t.tag = t.tag.AppendOne(t.a, atom.Null)
	t.id = t.id.AppendOne(t.a, atom.Null)
	t.parent = t.parent.AppendOne(t.a, parent)
	t.firstChild = t.firstChild.AppendOne(t.a, 0)
	t.nextSibling = t.nextSibling.AppendOne(t.a, 0)
	t.prevSibling = t.prevSibling.AppendOne(t.a, 0)
	t.lastChild = t.lastChild.AppendOne(t.a, 0)
	t.ancestorFilter = t.ancestorFilter.AppendOne(t.a, filter)
	t.nodeType = t.nodeType.AppendOne(t.a, nodeType)
	t.depth = t.depth.AppendOne(t.a, depth)
	t.flag = t.flag.AppendOne(t.a, 0)
	t.classesView = t.classesView.AppendOne(t.a, zc.Raw(0, 0))
	t.attrsView = t.attrsView.AppendOne(t.a, zc.Raw(0, 0))
	t.textView = t.textView.AppendOne(t.a, zc.Raw(0, 0))

	t.link(parent, id)

	return id
}

// link attaches child as the last child of parent, maintaining the
// sibling-link invariants of spec.md §3.
func (t *FlatTree) link(parent, child NodeId) {
	last := t.lastChild.Load(int(parent))

	if last == 0 {
		t.firstChild.Store(int(parent), child)
	} else {
		t.nextSibling.Store(int(last), child)
		t.prevSibling.Store(int(child), last)
	}

	t.lastChild.Store(int(parent), child)
}

// nodeAncestorContribution computes {hash(tag), hash(id) if non-null,
// hash(c) for c in classes} for node, the per-parent contribution the
// ancestor-Bloom invariant unions into every descendant.
func (t *FlatTree) nodeAncestorContribution(node NodeId) bloom.Filter {
	var f bloom.Filter

	if tag := t.tag.Load(int(node)); tag != atom.Null {
		f.Add(t.tagHash(tag))
	}

	if id := t.id.Load(int(node)); id != atom.Null {
		f.Add(t.tagHash(id))
	}

	view := t.classesView.Load(int(node))
	for i := 0; i < view.Len(); i++ {
		f.Add(t.tagHash(t.classes.Load(view.Start() + i)))
	}

	return f
}

// tagHash uses the hash function set by WithAtomTable; a tree built without one falls back
// to treating every atom id as its own hash, which is wrong for real use
// but keeps the zero value usable in tests that only exercise structure.
//
// Production code always goes through [FlatTree.WithAtomTable], which
// wires this to the session's [atom.Table.HashOf].
func (t *FlatTree) tagHash(id atom.Id) uint32 {
	if t.hashOf != nil {
		return t.hashOf(id)
	}
	return uint32(id)
}
