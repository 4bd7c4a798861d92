// Package selector compiles the textual selector dialect of spec.md §4.4
// into the flat bytecode consumed by pkg/vm, tracking packed specificity
// and non-fatal diagnostics as it goes.
package selector

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrAttributeNotSupported is returned for `[attr...]` syntax: attribute
// opcodes 04-09 are implemented in the VM but the textual compiler does
// not emit them, per spec.md §9's documented extension point.
var ErrAttributeNotSupported = errors.New("selector: attribute selectors are not supported by the textual compiler")

// ErrUnexpectedToken is returned when the source cannot be tokenized into
// the dialect of spec.md §4.4 at all (e.g. a dangling combinator).
var ErrUnexpectedToken = errors.New("selector: unexpected token")

// Specificity is the 24-bit packed (a<<16)|(b<<8)|c counter of spec.md
// §4.4: a = #id matches, b = #class/#attribute/#pseudo matches, c =
// #tag matches, each saturating at 255.
type Specificity uint32

func packSpecificity(a, b, c int) Specificity {
	return Specificity(saturate(a)<<16 | saturate(b)<<8 | saturate(c))
}

func saturate(n int) uint32 {
	if n > 255 {
		return 255
	}
	return uint32(n)
}

// A returns the #id counter.
func (s Specificity) A() int { return int(s>>16) & 0xFF }

// B returns the #class/#attribute/#pseudo counter.
func (s Specificity) B() int { return int(s>>8) & 0xFF }

// C returns the #tag counter.
func (s Specificity) C() int { return int(s) & 0xFF }

// Less reports whether s is lower specificity than o (compared
// lexicographically a, then b, then c - spec.md §4.5 "Multi-selector
// resolution").
func (s Specificity) Less(o Specificity) bool { return s < o }

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.A(), s.B(), s.C())
}

// DiagnosticKind classifies a [Diagnostic].
type DiagnosticKind int

const (
	// UnknownPseudoClass is emitted when a `:name` the compiler does not
	// recognize is silently dropped from the compound it appeared in,
	// per spec.md §9's resolved Open Question ("the source silently
	// ignores").
	UnknownPseudoClass DiagnosticKind = iota
)

// Diagnostic is a non-fatal compile-time note. Diagnostics never change
// whether compilation succeeds; they exist purely so a host can surface
// "did you mean" style warnings.
type Diagnostic struct {
	Kind   DiagnosticKind
	Offset int
	Text   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("offset %d: unknown pseudo-class %q", d.Offset, d.Text)
}

// CompiledSelector is the output of [Compile]: an immutable bytecode blob
// plus its packed specificity and (optionally) the original source text,
// exactly spec.md §4.4's "Output".
type CompiledSelector struct {
	Bytecode    []byte
	Specificity Specificity
	Source      string

	// RequiredHash is the content hash of the subject compound's most
	// selective requirement (id, then class, then tag - same priority as
	// the per-node bloom hint below), valid iff HasRequiredHash. It is
	// the one hash that must occur *somewhere* in a document for this
	// selector to match *any* node in it, letting a session reject the
	// whole selector against a whole document in one check, per spec.md
	// §2's document-wide pre-filter.
	RequiredHash    uint32
	HasRequiredHash bool
}

// emitter accumulates bytecode and tracks specificity while compiling one
// selector.
type emitter struct {
	buf  []byte
	a, b, c int
}

func (e *emitter) op(o Op) { e.buf = append(e.buf, byte(o)) }

func (e *emitter) u32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
}

func (e *emitter) i16(v int16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	e.buf = append(e.buf, tmp[:]...)
}

// matchTag emits MATCH_TAG and counts it against the #tag specificity
// bucket.
func (e *emitter) matchTag(atomId uint32) {
	e.op(OpMatchTag)
	e.u32(atomId)
	e.c++
}

// matchId emits MATCH_ID and counts it against the #id bucket.
func (e *emitter) matchId(atomId uint32) {
	e.op(OpMatchId)
	e.u32(atomId)
	e.a++
}

// matchClass emits MATCH_CLASS and counts it against the #class bucket.
func (e *emitter) matchClass(atomId uint32) {
	e.op(OpMatchClass)
	e.u32(atomId)
	e.b++
}

func (e *emitter) matchAny() { e.op(OpMatchAny) }

// pseudo emits a zero-operand PSEUDO_* opcode and counts it against the
// #class/#attribute/#pseudo bucket.
func (e *emitter) pseudo(o Op) {
	e.op(o)
	e.b++
}

// pseudoNth emits PSEUDO_NTH_CHILD / PSEUDO_NTH_LAST_CHILD with its An+B
// operand pair.
func (e *emitter) pseudoNth(o Op, a, b int16) {
	e.op(o)
	e.i16(a)
	e.i16(b)
	e.b++
}

func (e *emitter) combinator(o Op) { e.op(o) }

func (e *emitter) finish() CompiledSelector {
	e.op(OpMatchSuccess)
	return CompiledSelector{
		Bytecode:    e.buf,
		Specificity: packSpecificity(e.a, e.b, e.c),
	}
}
