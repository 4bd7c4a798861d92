// Package slice provides Slice[T], the structure-of-arrays column type that
// the atom table's entry array and the flat tree's per-field columns are
// built out of.
//
// A Slice[T] is an ordinary growable Go slice that charges its growth to an
// [arena.Allocator], so that every column in a session reports through one
// shared accounting and logging path and so that a session's Reset can be
// felt uniformly across all of its columns, matching the append-only,
// freed-together discipline spec'd for the flat tree and atom arena.
package slice

import (
	"unsafe"

	"github.com/flier/cssmatch/pkg/arena"
	"github.com/flier/cssmatch/pkg/opt"
)

// Slice is a growable column of T, backed by an ordinary Go slice.
type Slice[T any] struct {
	data []T
}

// FromBytes wraps b as a byte column, charging its length to a.
func FromBytes(a arena.Allocator, b []byte) Slice[byte] {
	return Of(a, b...)
}

// FromString wraps s as a byte column, charging its length to a.
func FromString(a arena.Allocator, s string) Slice[byte] {
	return Of(a, []byte(s)...)
}

// Of allocates a column holding the given values.
func Of[T any](a arena.Allocator, values ...T) Slice[T] {
	s := Make[T](a, len(values))
	copy(s.data, values)
	return s
}

// Make allocates a column of the given length, zero-valued.
func Make[T any](a arena.Allocator, n int) Slice[T] {
	var zero T
	a.Charge(n * int(unsafe.Sizeof(zero)))
	return Slice[T]{data: make([]T, n)}
}

// Len returns this column's length.
func (s Slice[T]) Len() int { return len(s.data) }

// Empty returns true if this column is empty.
func (s Slice[T]) Empty() bool { return len(s.data) == 0 }

// Get returns a pointer to the value at index n.
//
// The pointer is only valid until the next Append/AppendOne that grows the
// column's backing array; callers that need a stable reference should copy
// the value out with Load instead.
func (s Slice[T]) Get(n int) *T { return &s.data[n] }

// Load returns the value at index n.
func (s Slice[T]) Load(n int) T { return s.data[n] }

// CheckedLoad is Load, but reports None instead of panicking when n is
// out of range - for the one caller in this module that can't trust
// its index came from internal bookkeeping (an id crossing the ABI
// boundary from a host), rather than the column indexing every other
// caller already knows is in range.
func (s Slice[T]) CheckedLoad(n int) opt.Option[T] {
	if n < 0 || n >= len(s.data) {
		return opt.None[T]()
	}
	return opt.Some(s.data[n])
}

// Store sets the value at index n.
func (s Slice[T]) Store(n int, v T) { s.data[n] = v }

// Raw returns the underlying slice for this column.
//
// The returned slice aliases s's backing array; callers must not retain it
// across an Append/AppendOne call on s, which may reallocate.
func (s Slice[T]) Raw() []T { return s.data }

// Append appends elems to the column, charging any growth to a, and returns
// the (possibly reallocated) column.
func (s Slice[T]) Append(a arena.Allocator, elems ...T) Slice[T] {
	before := cap(s.data)
	s.data = append(s.data, elems...)
	if grown := cap(s.data) - before; grown > 0 {
		var zero T
		a.Charge(grown * int(unsafe.Sizeof(zero)))
	}
	return s
}

// AppendOne is Append for a single element.
func (s Slice[T]) AppendOne(a arena.Allocator, elem T) Slice[T] {
	return s.Append(a, elem)
}

// Slice returns the sub-column [start:end), sharing the same backing array.
func (s Slice[T]) Slice(start, end int) Slice[T] {
	return Slice[T]{data: s.data[start:end]}
}
