package arena

// Recycled is an [Allocator] for sessions that get rebuilt against a new
// document: unlike [Arena], Reset does not forget the high-water mark, so a
// caller can use it (e.g. via [Arena.Bytes]-style accounting hooks in the
// columns built against it) to pre-size the next document's columns instead
// of growing them from zero one append at a time.
//
// This mirrors the teacher's Arena/Recycled split (a plain arena vs. one
// that remembers size-class history across resets) without reproducing its
// free-list machinery, which depended on raw pointer arithmetic; here
// "recycling" means remembering a capacity hint, since the actual backing
// storage is ordinary garbage-collected Go slices.
type Recycled struct {
	bytes int // live charges
	high  int // high-water mark across resets
}

var _ Allocator = (*Recycled)(nil)

// Charge implements [Allocator].
func (a *Recycled) Charge(delta int) {
	a.bytes += delta
	if a.bytes > a.high {
		a.high = a.bytes
	}
	a.Log("charge", "%+d -> %d bytes (high %d)", delta, a.bytes, a.high)
}

// Bytes returns the number of bytes currently charged to this allocator.
func (a *Recycled) Bytes() int { return a.bytes }

// HighWaterMark returns the largest value [Recycled.Bytes] has ever reported,
// including across resets - a sizing hint for the next document's columns.
func (a *Recycled) HighWaterMark() int { return a.high }

// Reset forgets the live charges but keeps the high-water mark.
func (a *Recycled) Reset() {
	a.Log("reset", "%d bytes freed, high-water mark %d retained", a.bytes, a.high)
	a.bytes = 0
}

// Log implements [Allocator].
func (a *Recycled) Log(op, format string, args ...any) {
	log(a, op, format, args...)
}
