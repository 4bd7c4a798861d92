package selector

import "github.com/dolthub/maphash"

// pseudoClass names every `:name` pseudo-class the textual compiler
// recognizes, including the two `(An+B)` forms; spec.md §4.4.
type pseudoClass int

const (
	pseudoUnknown pseudoClass = iota
	pseudoFirstChild
	pseudoLastChild
	pseudoOnlyChild
	pseudoEmpty
	pseudoRoot
	pseudoNthChild
	pseudoNthLastChild
)

// pseudoEntry is one bucket-chain link of the closed pseudo-class keyword
// table below.
type pseudoEntry struct {
	name string
	kind pseudoClass
	next int // 0 terminates; entries are 1-indexed, matching pkg/atom's convention
}

// pseudoTable is a tiny open-chaining hash table over the fixed,
// compile-time-known set of pseudo-class keywords, mirroring pkg/atom's
// bucket-selection approach: a randomly-seeded [maphash.Hasher] picks the
// bucket, never the table's own identity of a keyword. Since the keyword
// set never grows at runtime, a single process-wide instance is built
// once at package init and reused by every [Compile] call.
type pseudoTable struct {
	buckets [16]int
	entries []pseudoEntry
	hasher  maphash.Hasher[string]
}

func newPseudoTable(pairs map[string]pseudoClass) *pseudoTable {
	t := &pseudoTable{
		entries: make([]pseudoEntry, 1, len(pairs)+1), // index 0: sentinel
		hasher:  maphash.NewHasher[string](),
	}

	for name, kind := range pairs {
		bucket := t.hasher.Hash(name) & uint64(len(t.buckets)-1)
		t.entries = append(t.entries, pseudoEntry{name: name, kind: kind, next: t.buckets[bucket]})
		t.buckets[bucket] = len(t.entries) - 1
	}

	return t
}

func (t *pseudoTable) lookup(name string) pseudoClass {
	bucket := t.hasher.Hash(name) & uint64(len(t.buckets)-1)

	for i := t.buckets[bucket]; i != 0; i = t.entries[i].next {
		if t.entries[i].name == name {
			return t.entries[i].kind
		}
	}

	return pseudoUnknown
}

var pseudoKeywords = newPseudoTable(map[string]pseudoClass{
	"first-child":    pseudoFirstChild,
	"last-child":     pseudoLastChild,
	"only-child":     pseudoOnlyChild,
	"empty":          pseudoEmpty,
	"root":           pseudoRoot,
	"nth-child":      pseudoNthChild,
	"nth-last-child": pseudoNthLastChild,
})
