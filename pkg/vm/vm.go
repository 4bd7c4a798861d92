// Package vm executes the bytecode pkg/selector compiles, matching one
// program against one tree node with bounded backtracking, and resolves
// the winner among several programs tested against the same node.
package vm

import (
	"encoding/binary"

	"github.com/flier/cssmatch/pkg/atom"
	sel "github.com/flier/cssmatch/pkg/selector"
	"github.com/flier/cssmatch/pkg/tree"
)

// MaxBacktrackDepth bounds the number of pending COMB_DESCENDANT retry
// points kept live at once, spec.md §4.5/§9's build-time tunable. Once
// the bound is reached, further retry points are silently dropped - a
// documented, graceful degradation rather than unbounded growth.
const MaxBacktrackDepth = 32

// frame is one pending "next ancestor to try" retry point, pushed each
// time a COMB_DESCENDANT successfully climbs to a candidate ancestor.
type frame struct {
	pc   int
	node tree.NodeId
}

// Execute runs program against t, starting at start, and reports whether
// it matches. table resolves the atom operands MATCH_ATTR_* encode for
// their literal comparand (attribute names and values are interned the
// same way tags, ids and classes are, per spec.md §3's "optional
// attribute list (name AtomId, value bytes)" - only the *value* stored on
// the node itself is raw bytes; the compiled literal a selector compares
// it against is always an atom). Execute never panics: malformed
// bytecode, unknown opcodes and out-of-range operands are treated as
// match failures, per spec.md §4.5's failure model.
func Execute(program []byte, table *atom.Table, t *tree.FlatTree, start tree.NodeId) bool {
	var stack [MaxBacktrackDepth]frame
	sp := 0

	pc := 0
	current := start

	push := func(f frame) {
		if sp < len(stack) {
			stack[sp] = f
			sp++
		}
	}

	// fail is the single point every match failure funnels through: it
	// looks for a pending descendant-combinator retry point and resumes
	// there, or reports overall failure when none remain. This is what
	// lets a deeply-nested "a b c" selector retry a farther ancestor for
	// b when no ancestor of the nearer b-candidate satisfies a.
	fail := func() (resume bool) {
		if sp == 0 {
			return false
		}
		sp--
		current = stack[sp].node
		pc = stack[sp].pc
		return true
	}

	for {
		if pc < 0 || pc >= len(program) {
			return false
		}

		op := sel.Op(program[pc])

		switch op {
		case sel.OpMatchSuccess:
			return true

		case sel.OpMatchFail:
			if !fail() {
				return false
			}
			continue

		case sel.OpCombDescendant:
			next := t.Parent(current)
			if next == tree.Root {
				if !fail() {
					return false
				}
				continue
			}
			// Push the candidate itself, not the node we climbed from: a
			// later retry restores current to this candidate and re-enters
			// this same instruction, which computes *its* parent - the
			// next ancestor up - rather than re-trying this one forever.
			push(frame{pc: pc, node: next})
			current = next
			pc++
			continue

		case sel.OpCombChild:
			next := t.Parent(current)
			if next == tree.Root {
				if !fail() {
					return false
				}
				continue
			}
			current = next
			pc++
			continue

		case sel.OpCombAdjacent:
			next, ok := prevElementSibling(t, current)
			if !ok {
				if !fail() {
					return false
				}
				continue
			}
			current = next
			pc++
			continue

		case sel.OpCombSibling:
			next := t.PrevSibling(current)
			if next == 0 {
				if !fail() {
					return false
				}
				continue
			}
			current = next
			pc++
			continue

		case sel.OpJump:
			pc = pc + 3 + int(i16At(program, pc+1))
			continue

		case sel.OpJumpFail:
			// Reachable only with matched still true (a failed MATCH_* is
			// already funneled through fail() above before pc ever lands
			// here), so this is always the fallthrough: advance past the
			// operand and continue normally.
			pc += 3
			continue

		case sel.OpJumpAlt:
			// Reachable only with matched true, so the jump is always
			// taken - this is how a compiled alternative branch gets
			// skipped once the primary branch already matched.
			pc = pc + 3 + int(i16At(program, pc+1))
			continue
		}

		ok, size := evalSimple(op, program, pc, table, t, current)
		pc += size

		if !ok {
			if !fail() {
				return false
			}
		}
	}
}

func u32At(program []byte, pc int) uint32 {
	if pc+4 > len(program) {
		return 0
	}
	return binary.LittleEndian.Uint32(program[pc : pc+4])
}

func i16At(program []byte, pc int) int16 {
	if pc+2 > len(program) {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(program[pc : pc+2]))
}

// evalSimple evaluates one MATCH_*/PSEUDO_*/BLOOM_CHECK_* instruction at
// program[pc] against node, returning whether it matched and the total
// byte length of the instruction (opcode + operands) to advance pc by.
// Any opcode this function doesn't recognize is treated as a match
// failure of length 1, keeping the "never panics" contract even against
// malformed bytecode.
func evalSimple(op sel.Op, program []byte, pc int, table *atom.Table, t *tree.FlatTree, node tree.NodeId) (bool, int) {
	body := pc + 1

	switch op {
	case sel.OpMatchTag:
		return t.Tag(node) == atom.Id(u32At(program, body)), 5

	case sel.OpMatchId:
		return t.Id(node) == atom.Id(u32At(program, body)), 5

	case sel.OpMatchClass:
		return t.HasClass(node, atom.Id(u32At(program, body))), 5

	case sel.OpMatchAttr:
		_, ok := t.AttributeValue(node, atom.Id(u32At(program, body)))
		return ok, 5

	case sel.OpMatchAttrEq, sel.OpMatchAttrWord, sel.OpMatchAttrPrefix,
		sel.OpMatchAttrSuffix, sel.OpMatchAttrSubstr:
		return evalAttrPredicate(op, program, body, table, t, node), 9

	case sel.OpMatchAny:
		return t.IsElement(node), 1

	case sel.OpPseudoFirstChild:
		return t.PrevSibling(node) == 0, 1

	case sel.OpPseudoLastChild:
		return t.NextSibling(node) == 0, 1

	case sel.OpPseudoOnlyChild:
		return t.PrevSibling(node) == 0 && t.NextSibling(node) == 0, 1

	case sel.OpPseudoEmpty:
		return t.IsEmpty(node), 1

	case sel.OpPseudoRoot:
		return t.Parent(node) == tree.Root, 1

	case sel.OpPseudoNthChild:
		a, b := i16At(program, body), i16At(program, body+2)
		index, _ := siblingCounts(t, node)
		return matchesNth(int(a), int(b), index), 5

	case sel.OpPseudoNthLastChild:
		a, b := i16At(program, body), i16At(program, body+2)
		index, total := siblingCounts(t, node)
		return matchesNth(int(a), int(b), total-index+1), 5

	case sel.OpBloomCheckClass, sel.OpBloomCheckId, sel.OpBloomCheckTag:
		h := u32At(program, body)
		return t.AncestorFilter(node).MightContain(h), 5

	default:
		return false, 1
	}
}

// evalAttrPredicate resolves want's atom back to bytes and compares it
// against node's raw attribute value bytes per one of spec.md §4.4's
// attribute predicates. A want atom that is no longer known to table (it
// always is, in practice - the compiler interns it at compile time) is
// treated as a match failure rather than a panic.
func evalAttrPredicate(op sel.Op, program []byte, body int, table *atom.Table, t *tree.FlatTree, node tree.NodeId) bool {
	name := atom.Id(u32At(program, body))
	want := atom.Id(u32At(program, body+4))

	value, ok := t.AttributeValue(node, name)
	if !ok {
		return false
	}

	wantStr, ok := table.StringOf(want)
	if !ok {
		return false
	}

	switch op {
	case sel.OpMatchAttrEq:
		return string(value) == wantStr

	case sel.OpMatchAttrWord:
		for _, word := range splitWords(value) {
			if word == wantStr {
				return true
			}
		}
		return false

	case sel.OpMatchAttrPrefix:
		return len(wantStr) > 0 && len(value) >= len(wantStr) && string(value[:len(wantStr)]) == wantStr

	case sel.OpMatchAttrSuffix:
		return len(wantStr) > 0 && len(value) >= len(wantStr) && string(value[len(value)-len(wantStr):]) == wantStr

	case sel.OpMatchAttrSubstr:
		return len(wantStr) > 0 && containsBytes(value, wantStr)

	default:
		return false
	}
}

func splitWords(value []byte) []string {
	var words []string
	start := -1

	for i := 0; i <= len(value); i++ {
		isSpace := i == len(value) || value[i] == ' ' || value[i] == '\t' || value[i] == '\n'
		if !isSpace && start < 0 {
			start = i
		} else if isSpace && start >= 0 {
			words = append(words, string(value[start:i]))
			start = -1
		}
	}

	return words
}

func containsBytes(haystack []byte, needle string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == needle {
			return true
		}
	}
	return false
}

// prevElementSibling walks backward from node, skipping non-element
// siblings, per COMB_ADJACENT's spec.md §4.4 semantics.
func prevElementSibling(t *tree.FlatTree, node tree.NodeId) (tree.NodeId, bool) {
	for s := t.PrevSibling(node); s != 0; s = t.PrevSibling(s) {
		if t.IsElement(s) {
			return s, true
		}
	}
	return 0, false
}

// siblingCounts returns node's 1-based forward index among its parent's
// element siblings, and the total number of element siblings, per
// spec.md §4.5's nth-child arithmetic ("only is_element siblings
// counted").
func siblingCounts(t *tree.FlatTree, node tree.NodeId) (index, total int) {
	parent := t.Parent(node)

	for c := range t.Children(parent) {
		if !t.IsElement(c) {
			continue
		}
		total++
		if c == node {
			index = total
		}
	}

	return index, total
}

// matchesNth implements spec.md §4.5's An+B formula against a 1-based
// index.
func matchesNth(a, b, index int) bool {
	if a == 0 {
		return index == b
	}

	d := index - b

	if a > 0 {
		return d >= 0 && d%a == 0
	}

	return d <= 0 && d%(-a) == 0
}
