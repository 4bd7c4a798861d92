package selector

import (
	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/res"
)

// Compiled is the return value of [Compile]: the bytecode program plus
// any non-fatal diagnostics gathered while compiling it.
type Compiled struct {
	Selector    CompiledSelector
	Diagnostics []Diagnostic
}

func combOp(c Combinator) Op {
	switch c {
	case Child:
		return OpCombChild
	case Adjacent:
		return OpCombAdjacent
	case Sibling:
		return OpCombSibling
	default:
		return OpCombDescendant
	}
}

// Compile compiles source into a [Compiled] program against table,
// interning every tag/class/id name it encounters. Compilation emits
// compounds right-to-left into the bytecode (the rightmost, "key"
// compound tests the VM's start node first, matching [pkg/vm]'s
// right-to-left execution order) while walking the token stream
// left-to-right, exactly spec.md §4.4's dialect and §4.5's VM contract.
func Compile(source string, table *atom.Table) res.Result[Compiled] {
	steps, err := tokenize(source)
	if err != nil {
		return res.Err[Compiled](err)
	}

	var e emitter
	var diags []Diagnostic

	hasDescendant := false

	for idx := len(steps) - 1; idx >= 0; idx-- {
		st := steps[idx]

		if err := emitCompound(&e, &diags, st.compound, table); err != nil {
			return res.Err[Compiled](err)
		}

		if idx > 0 {
			if st.combinator == Descendant {
				hasDescendant = true
			}
			e.combinator(combOp(st.combinator))
		}
	}

	compiled := e.finish()
	compiled.Source = source

	// The leftmost compound is a strict ancestor of the start node only
	// when the combinator right after it climbs (descendant or child); one
	// followed by `+` or `~` is a sibling of an ancestor, whose hash the
	// start node's ancestor filter need not hold.
	if hasDescendant && (steps[1].combinator == Descendant || steps[1].combinator == Child) {
		if hint, ok := bloomHint(steps[0].compound, table); ok {
			compiled.Bytecode = append(hint, compiled.Bytecode...)
		}
	}

	// The subject compound is steps[len(steps)-1]: the rightmost compound
	// in the source, the one the VM tests against its start node first.
	// Its most selective requirement is what a whole document must
	// contain for this selector to match anything in it at all.
	if _, name, ok := mostSelective(steps[len(steps)-1].compound); ok {
		if id, err := table.InternString(name); err == nil {
			compiled.RequiredHash = table.HashOf(id)
			compiled.HasRequiredHash = true
		}
	}

	return res.Ok(Compiled{Selector: compiled, Diagnostics: diags})
}

// emitCompound emits every simple selector in c, in any order (they are
// commutative per spec.md §4.4), appending any unknown-pseudo-class
// diagnostics to diags and failing outright on `[attr]` syntax.
func emitCompound(e *emitter, diags *[]Diagnostic, c compound, table *atom.Table) error {
	for _, tok := range c.tokens {
		switch tok.kind {
		case tokUniversal:
			e.matchAny()

		case tokTag:
			id, err := table.InternString(tok.text)
			if err != nil {
				return err
			}
			e.matchTag(uint32(id))

		case tokClass:
			id, err := table.InternString(tok.text)
			if err != nil {
				return err
			}
			e.matchClass(uint32(id))

		case tokId:
			id, err := table.InternString(tok.text)
			if err != nil {
				return err
			}
			e.matchId(uint32(id))

		case tokAttr:
			return ErrAttributeNotSupported

		case tokPseudo:
			if err := emitPseudo(e, diags, c.offset, tok); err != nil {
				return err
			}
		}
	}

	return nil
}

func emitPseudo(e *emitter, diags *[]Diagnostic, offset int, tok token) error {
	switch pseudoKeywords.lookup(tok.text) {
	case pseudoFirstChild:
		e.pseudo(OpPseudoFirstChild)
	case pseudoLastChild:
		e.pseudo(OpPseudoLastChild)
	case pseudoOnlyChild:
		e.pseudo(OpPseudoOnlyChild)
	case pseudoEmpty:
		e.pseudo(OpPseudoEmpty)
	case pseudoRoot:
		e.pseudo(OpPseudoRoot)
	case pseudoNthChild:
		a, b, err := parseNth(tok.args)
		if err != nil {
			return err
		}
		e.pseudoNth(OpPseudoNthChild, a, b)
	case pseudoNthLastChild:
		a, b, err := parseNth(tok.args)
		if err != nil {
			return err
		}
		e.pseudoNth(OpPseudoNthLastChild, a, b)
	default:
		*diags = append(*diags, Diagnostic{
			Kind:   UnknownPseudoClass,
			Offset: offset,
			Text:   tok.text,
		})
	}

	return nil
}

// mostSelective picks the single most selective token in a compound -
// id over class over tag, per spec.md §4.4's specificity ordering - the
// one requirement worth hashing for a bloom pre-check. ok is false for a
// compound with no id/class/tag token at all (e.g. a bare universal
// selector).
func mostSelective(c compound) (kind tokenKind, name string, ok bool) {
	priority := func(k tokenKind) int {
		switch k {
		case tokId:
			return 3
		case tokClass:
			return 2
		case tokTag:
			return 1
		default:
			return 0
		}
	}

	best := 0

	for _, tok := range c.tokens {
		if p := priority(tok.kind); p > best {
			kind, name, best = tok.kind, tok.text, p
		}
	}

	return kind, name, best > 0
}

// bloomHint builds the optional BLOOM_CHECK_* prefix of spec.md §4.4's
// compilation policy: a pre-check of the VM's start node against the
// leftmost compound's most selective requirement (id, then class, then
// tag), hoisted to the very front of the program. Because the
// ancestor-Bloom invariant already unions every strict ancestor's
// contribution, this single check at the start node substitutes for
// walking the whole chain of COMB_DESCENDANT steps when the hash cannot
// possibly occur above it. It is a pure performance hint: the VM
// produces the same boolean result with or without it.
func bloomHint(leftmost compound, table *atom.Table) ([]byte, bool) {
	kind, name, ok := mostSelective(leftmost)
	if !ok {
		return nil, false
	}

	id, err := table.InternString(name)
	if err != nil {
		return nil, false
	}

	var op Op
	switch kind {
	case tokId:
		op = OpBloomCheckId
	case tokClass:
		op = OpBloomCheckClass
	default:
		op = OpBloomCheckTag
	}

	var e emitter
	e.op(op)
	e.u32(table.HashOf(id))

	return e.buf, true
}
