// Package atom interns byte strings into stable 32-bit identifiers with a
// stable, reproducible content hash.
//
// This is the engine's entry point for every tag name, id, class and
// attribute name it sees (a node's attribute values stay raw bytes in the
// tree): strings are collapsed to [Id]s
// once, at parse time, and every later comparison - a tag match, a class
// lookup, a Bloom-filter insertion - compares small integers instead of
// bytes.
package atom

import (
	"errors"
	"fmt"

	"github.com/dolthub/maphash"

	"github.com/flier/cssmatch/pkg/arena"
	"github.com/flier/cssmatch/pkg/arena/slice"
	"github.com/flier/cssmatch/pkg/zc"
)

// Id is a 32-bit atom identifier. The zero Id is the null atom: "absent
// string." Two distinct interned strings never share an Id; identical byte
// sequences interned on the same [Table] always produce the same Id.
type Id uint32

// Null is the reserved id denoting "absent string."
const Null Id = 0

// MaxLen is the largest number of bytes a single atom may hold.
const MaxLen = 65535

// ErrStringTooLong is returned by [Table.Intern] when the input exceeds
// [MaxLen] bytes.
var ErrStringTooLong = errors.New("atom: string too long")

func (id Id) String() string { return fmt.Sprintf("atom#%d", uint32(id)) }

// entry is one row of the dense entry array described by the spec as
// "{hash, offset, len, next}": view packs offset and len, next chains
// within a bucket (0 terminates the chain, since entry 0 is the sentinel).
type entry struct {
	hash uint32
	view zc.View
	next uint32
}

// Table is an open-chaining hash table interning byte strings into [Id]s.
//
// Structure: a power-of-two bucket array of entry indices, and a dense
// entry array indexing into one contiguous byte arena holding every
// interned string end-to-end, per spec §4.1. Entry 0 is a reserved
// sentinel so that a zero "next" unambiguously means "end of chain."
//
// Bucket selection uses a randomly-seeded [maphash.Hasher] - adapted from
// the teacher's swiss-map group/control layout, which pulls in the same
// dependency - so that the distribution of chains across buckets cannot be
// predicted from the outside. This is independent of each entry's stored
// content hash, which remains the spec-mandated FNV-1a and is what
// [Table.HashOf] and Bloom insertion consume; the two hashes never need to
// agree with one another.
type Table struct {
	a       arena.Allocator
	bytes   slice.Slice[byte]
	entries slice.Slice[entry]
	buckets []uint32
	hasher  maphash.Hasher[string]
	count   int
}

const initialBuckets = 8

// New creates an empty Table whose storage is charged to a.
func New(a arena.Allocator) *Table {
	t := &Table{
		a:       a,
		bytes:   slice.Make[byte](a, 0),
		entries: slice.Make[entry](a, 1), // index 0: sentinel
		buckets: make([]uint32, initialBuckets),
		hasher:  maphash.NewHasher[string](),
	}

	a.Charge(len(t.buckets) * 4)

	return t
}

// Intern returns the stable [Id] for b, interning it if this is the first
// time the table has seen these bytes. Empty input returns [Null].
func (t *Table) Intern(b []byte) (Id, error) {
	if len(b) == 0 {
		return Null, nil
	}

	if len(b) > MaxLen {
		return Null, fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}

	contentHash := Hash(b)
	bucket := t.bucketFor(b)

	for i := t.buckets[bucket]; i != 0; i = t.entries.Load(int(i)).next {
		e := t.entries.Load(int(i))
		if e.hash == contentHash && e.view.Len() == len(b) && string(e.view.Bytes(t.bytes.Raw())) == string(b) {
			return Id(i), nil
		}
	}

	view := zc.Raw(t.bytes.Len(), len(b))
	t.bytes = t.bytes.Append(t.a, b...)

	id := Id(t.entries.Len())
	t.entries = t.entries.AppendOne(t.a, entry{hash: contentHash, view: view, next: t.buckets[bucket]})
	t.buckets[bucket] = uint32(id)
	t.count++

	if t.count*4 >= len(t.buckets)*3 {
		t.grow()
	}

	return id, nil
}

// InternString is [Table.Intern] for a string.
func (t *Table) InternString(s string) (Id, error) {
	return t.Intern([]byte(s))
}

// StringOf returns the original bytes for id, or ("", false) for the null
// id or an id out of range.
func (t *Table) StringOf(id Id) (string, bool) {
	if id == Null || int(id) >= t.entries.Len() {
		return "", false
	}

	e := t.entries.Load(int(id))

	return e.view.String(t.bytes.Raw()), true
}

// HashOf returns the FNV-1a content hash of id's bytes, or 0 for the null
// id or an id out of range.
func (t *Table) HashOf(id Id) uint32 {
	if id == Null || int(id) >= t.entries.Len() {
		return 0
	}

	return t.entries.Load(int(id)).hash
}

// Len returns the number of distinct non-null atoms interned so far.
func (t *Table) Len() int { return t.count }

func (t *Table) bucketFor(b []byte) uint32 {
	return uint32(t.hasher.Hash(string(b))) & uint32(len(t.buckets)-1)
}

// grow doubles the bucket array and re-links every entry in place; the
// byte arena is untouched.
func (t *Table) grow() {
	old := t.buckets
	t.buckets = make([]uint32, len(old)*2)
	t.a.Charge(len(t.buckets) * 4)

	for i := 1; i < t.entries.Len(); i++ {
		e := t.entries.Get(i)
		b := e.view.Bytes(t.bytes.Raw())
		bucket := t.bucketFor(b)
		e.next = t.buckets[bucket]
		t.buckets[bucket] = uint32(i)
	}
}
