// Package arena provides the session-lifetime memory accounting shared by
// every component of a matching session: the atom table's byte arena and
// the flat tree's SoA columns share one [Allocator] (compiled selector
// bytecode is a plain byte slice and is not charged to it) so that the
// whole session can be torn down - or
// recycled for the next document - in a single step.
//
// Unlike a true bump allocator, an Allocator here does not hand out raw
// memory: Go's own growable slices (wrapped by [github.com/flier/cssmatch/pkg/arena/slice.Slice])
// already provide that, and relying on them keeps every column's backing
// store subject to the garbage collector's normal bookkeeping. What an
// Allocator provides instead is the arena *discipline*: one shared charge
// counter for logging and capacity planning, and one Reset call that every
// column in a session is wired to, mirroring the "teardown releases
// everything in one step" lifecycle required of a build-then-query session.
package arena

// Allocator is the interface every column and byte-arena in a session
// charges its growth against.
//
// It is implemented by [Arena] (charges are forgotten on [Arena.Reset]) and
// [Recycled] (retained capacity is tracked across resets so a session can be
// reused for the next document without re-growing its columns from zero).
type Allocator interface {
	// Charge records that delta bytes have been committed to (or, if delta
	// is negative, released from) columns owned by this allocator.
	Charge(delta int)

	// Log emits a debug-build-only trace line tagged with this allocator's
	// identity; a no-op in release builds.
	Log(op, format string, args ...any)
}

// Arena is the default [Allocator]: a simple byte counter with a Reset that
// forgets everything charged to it.
//
// A zero Arena is empty and ready to use.
type Arena struct {
	bytes int
}

var _ Allocator = (*Arena)(nil)

// Charge implements [Allocator].
func (a *Arena) Charge(delta int) {
	a.bytes += delta
	a.Log("charge", "%+d -> %d bytes", delta, a.bytes)
}

// Bytes returns the number of bytes currently charged to this arena.
func (a *Arena) Bytes() int { return a.bytes }

// Reset forgets every charge made to this arena.
//
// Columns built against this arena must be rebuilt (or re-grown from zero)
// after Reset; the arena itself does not hold any of their backing memory,
// so there is nothing further for Reset to release.
func (a *Arena) Reset() {
	a.Log("reset", "%d bytes freed", a.bytes)
	a.bytes = 0
}

// Log implements [Allocator].
func (a *Arena) Log(op, format string, args ...any) {
	log(a, op, format, args...)
}
