// Package bloom implements the ancestor Bloom filter the flat tree stores
// on every node, plus an additive, session-wide coarse pre-filter used to
// reject a selector against a whole document before any node is matched.
package bloom

import "math"

// Filter is a 64-bit compact ancestor Bloom filter: a single word, three
// bits set per insertion. False positives are permitted; false negatives
// are forbidden, by construction - [Filter.Add] only ever sets bits, never
// clears them.
type Filter uint64

// Empty returns the zero Filter.
func Empty() Filter { return Filter(0) }

// Single returns a Filter containing exactly one hash.
func Single(h uint32) Filter {
	var f Filter
	f.Add(h)
	return f
}

// Add sets the three bits h maps to: h&63, (h>>8)&63, (h>>16)&63, exactly
// as spec'd.
func (f *Filter) Add(h uint32) {
	*f |= Filter(1) << (h & 63)
	*f |= Filter(1) << ((h >> 8) & 63)
	*f |= Filter(1) << ((h >> 16) & 63)
}

// MightContain returns true iff all three bits h maps to are set. A false
// result is a guarantee that h was never added; a true result may be a
// false positive.
func (f Filter) MightContain(h uint32) bool {
	mask := Filter(1)<<(h&63) | Filter(1)<<((h>>8)&63) | Filter(1)<<((h>>16)&63)
	return f&mask == mask
}

// Union returns the bitwise OR of f and g - the filter for the union of
// the two sets of hashes that produced them.
func (f Filter) Union(g Filter) Filter { return f | g }

// IsEmpty returns true iff no bit is set.
func (f Filter) IsEmpty() bool { return f == 0 }

// Popcount returns the number of set bits.
func (f Filter) Popcount() int {
	count := 0
	for v := uint64(f); v != 0; v &= v - 1 {
		count++
	}
	return count
}

// EstimatedFPRate estimates the false-positive rate of this filter after n
// items have been inserted, per spec.md §4.2: (1 - e^(-3n/64))^3.
func EstimatedFPRate(n int) float64 {
	x := 1 - math.Exp(-3*float64(n)/64)
	return x * x * x
}
