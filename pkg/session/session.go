// Package session wires one atom table, one flat tree, one compiled
// selector list and one arena together into the single explicit handle
// spec.md §9's design notes recommend for any embedding that isn't the
// WASM boundary: "an explicit handle passed by the host."
//
// A Session moves through the two phases spec.md §5 names - build, then
// match - enforced here as a simple state flag rather than locking:
// InternString/AddNode/SetId/SetClasses/AddAttribute/AddTextNode and
// CompileSelector all belong to the build phase; Match belongs to the
// match phase. Calling a build-phase method after Freeze, or Match
// before it, returns ErrWrongPhase instead of silently corrupting a
// tree that backtracking matches are depending on staying put (spec.md
// §5's "mutated only during the build phase and read-only during
// matching").
package session

import (
	"errors"
	"fmt"

	"github.com/flier/cssmatch/pkg/arena"
	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/bloom"
	"github.com/flier/cssmatch/pkg/selector"
	"github.com/flier/cssmatch/pkg/tree"
	"github.com/flier/cssmatch/pkg/vm"
)

// documentFilterKeys and documentFilterFPRate size each session's
// [bloom.DocumentFilter]: a generous upper bound on distinct tag/id/class
// atoms for a single document, at a false-positive rate low enough that
// the pre-filter rejects real no-match cases far more often than it lets
// one through to the VM unnecessarily.
const (
	documentFilterKeys   = 4096
	documentFilterFPRate = 0.01
)

// ErrWrongPhase is returned when a build-phase method is called after
// Freeze, or Match is called before it.
var ErrWrongPhase = errors.New("session: wrong phase")

// IndexError reports that Match was asked for a selector
// index outside the compiled list, carrying the offending index and
// the list's size so a caller can report something more useful than a
// bare "out of range" - a concrete type rather than another sentinel,
// since the values are the whole point: see [github.com/flier/cssmatch/pkg/xerrors.AsA].
type IndexError struct {
	Index, Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("session: selector index %d out of range [0, %d)", e.Index, e.Count)
}

// Session is the build-then-query handle for one document and its
// selector list. The zero Session is not usable; construct one with New.
type Session struct {
	arena     *arena.Arena
	atoms     *atom.Table
	tree      *tree.FlatTree
	docFilter *bloom.DocumentFilter
	programs  []selector.CompiledSelector
	frozen    bool
}

// New creates a Session with a fresh arena, atom table and tree,
// containing only the synthetic document root.
func New() *Session {
	a := &arena.Arena{}
	atoms := atom.New(a)
	df := bloom.NewDocumentFilter(documentFilterKeys, documentFilterFPRate)
	t := tree.New(a).WithAtomTable(atoms).WithDocumentFilter(df)

	return &Session{arena: a, atoms: atoms, tree: t, docFilter: df}
}

// Reset tears down the session's tree and atom table in one step -
// spec.md §5's "teardown releases everything in one step" - and
// rebuilds both against a freshly-reset arena, ready for the next
// document. Compiled selectors are retained and recompiled here from
// their source text against the new atom table: their MATCH_* operands
// are atom ids, which only mean something in the table that interned
// them. The host does not need to compile them again.
func (s *Session) Reset() {
	s.arena.Reset()
	s.atoms = atom.New(s.arena)
	s.docFilter.Clear()
	s.tree = tree.New(s.arena).WithAtomTable(s.atoms).WithDocumentFilter(s.docFilter)
	s.frozen = false

	for i, p := range s.programs {
		if r := selector.Compile(p.Source, s.atoms); r.IsOk() {
			s.programs[i] = r.Unwrap().Selector
		}
	}
}

// Freeze ends the build phase and begins the match phase. Matching
// before Freeze, or any build-phase mutation after it, is rejected with
// ErrWrongPhase.
func (s *Session) Freeze() { s.frozen = true }

// Frozen reports whether the session is in the match phase.
func (s *Session) Frozen() bool { return s.frozen }

// Bytes reports the number of bytes currently charged to the session's
// arena, across the atom table and tree columns. Compiled bytecode is
// not charged to the arena.
func (s *Session) Bytes() int { return s.arena.Bytes() }

// InternString interns s into the session's atom table, returning its
// stable id. Build-phase only.
func (s *Session) InternString(str string) (atom.Id, error) {
	if s.frozen {
		return atom.Null, ErrWrongPhase
	}
	return s.atoms.InternString(str)
}

// AddNode creates an element node with the given tag under parent,
// mirroring the ABI's engine_add_node. Build-phase only.
func (s *Session) AddNode(tag atom.Id, parent tree.NodeId) (tree.NodeId, error) {
	if s.frozen {
		return tree.Root, ErrWrongPhase
	}
	return s.tree.CreateElement(tag, parent), nil
}

// AddTextNode creates a text node under parent. Build-phase only.
func (s *Session) AddTextNode(parent tree.NodeId, text []byte) (tree.NodeId, error) {
	if s.frozen {
		return tree.Root, ErrWrongPhase
	}
	return s.tree.CreateText(parent, text), nil
}

// SetId sets node's id attribute. Build-phase only.
func (s *Session) SetId(node tree.NodeId, id atom.Id) error {
	if s.frozen {
		return ErrWrongPhase
	}
	s.tree.SetId(node, id)
	return nil
}

// SetClasses sets node's class list. Build-phase only.
func (s *Session) SetClasses(node tree.NodeId, classes []atom.Id) error {
	if s.frozen {
		return ErrWrongPhase
	}
	return s.tree.SetClasses(node, classes)
}

// AddAttribute attaches a name/value attribute to node. Build-phase only.
func (s *Session) AddAttribute(node tree.NodeId, name atom.Id, value []byte) error {
	if s.frozen {
		return ErrWrongPhase
	}
	return s.tree.AddAttribute(node, name, value)
}

// CompileSelector compiles source against the session's atom table and
// appends it to the session-scoped selector list, returning its index -
// the ABI's engine_compile_selector contract. Diagnostics (e.g. an
// unknown pseudo-class) are non-fatal and discarded here; callers that
// need them should call selector.Compile directly. Build-phase only,
// since an unsupported selector (e.g. one using `[attr]`) returns an
// error rather than a partial program.
func (s *Session) CompileSelector(src string) (int, error) {
	if s.frozen {
		return -1, ErrWrongPhase
	}

	result := selector.Compile(src, s.atoms)
	if result.IsErr() {
		return -1, result.Err
	}

	s.programs = append(s.programs, result.Unwrap().Selector)
	return len(s.programs) - 1, nil
}

// SelectorCount returns the number of selectors compiled so far.
func (s *Session) SelectorCount() int { return len(s.programs) }

// Match evaluates the selector at selIdx against node, returning
// whether it matches - the ABI's engine_match_selector boolean case.
// Match-phase only.
func (s *Session) Match(selIdx int, node tree.NodeId) (bool, error) {
	if !s.frozen {
		return false, ErrWrongPhase
	}
	if selIdx < 0 || selIdx >= len(s.programs) {
		return false, &IndexError{Index: selIdx, Count: len(s.programs)}
	}

	return vm.ExecuteCompiled(s.programs[selIdx], s.atoms, s.docFilter, s.tree, node), nil
}

// Resolve evaluates every compiled selector against node and returns
// the index of the highest-specificity match, per vm.Resolve's
// last-rule-wins tie-break. Match-phase only.
func (s *Session) Resolve(node tree.NodeId) (int, bool, error) {
	if !s.frozen {
		return -1, false, ErrWrongPhase
	}

	idx, ok := vm.Resolve(s.programs, s.atoms, s.docFilter, s.tree, node)
	return idx, ok, nil
}

// NodeExists reports whether node was ever allocated by this session's
// tree. Used at the ABI boundary to validate a NodeId that came from a
// host before handing it to Match/Resolve, which otherwise trust every
// NodeId they're given the way the rest of this package's internal
// callers can.
func (s *Session) NodeExists(node tree.NodeId) bool {
	_, ok := s.tree.CheckedNodeType(node)
	return ok
}

// Tree exposes the session's tree for read-only inspection after
// Freeze (e.g. to walk matched nodes). It is also usable during the
// build phase by callers that need direct access beyond the
// phase-gated helpers above, such as iterating children.
func (s *Session) Tree() *tree.FlatTree { return s.tree }

// Atoms exposes the session's atom table for read-only inspection,
// e.g. resolving a matched attribute value's AtomId back to a string.
func (s *Session) Atoms() *atom.Table { return s.atoms }
