package bloom

// Filter256 is the optional 256-bit ancestor filter variant for deep
// trees: four 64-bit lanes, two bit positions set per insertion, the lane
// and the two positions each drawn from a disjoint slice of the hash.
// Each of the two filters is sound on its own; they set different bits
// for the same hash.
//
// Matching itself always uses the 64-bit [Filter]; Filter256 is a purely
// additive option for producers willing to spend more memory per node to
// cut the false-positive rate on very deep trees.
type Filter256 [4]uint64

// Add selects one of the four lanes from bits 24-25 of h and sets two bits
// within it, drawn from bits 0-5 and 6-11. These ranges overlap the ones
// [Filter.Add] reads (0-5, 8-13, 16-21).
func (f *Filter256) Add(h uint32) {
	lane := (h >> 24) & 3
	f[lane] |= uint64(1) << (h & 63)
	f[lane] |= uint64(1) << ((h >> 6) & 63)
}

// MightContain returns true iff both bits h maps to, in the lane it maps
// to, are set.
func (f Filter256) MightContain(h uint32) bool {
	lane := (h >> 24) & 3
	mask := uint64(1)<<(h&63) | uint64(1)<<((h>>6)&63)
	return f[lane]&mask == mask
}

// Union returns the lane-wise OR of f and g.
func (f Filter256) Union(g Filter256) Filter256 {
	var out Filter256
	for i := range f {
		out[i] = f[i] | g[i]
	}
	return out
}

// ToCompact ORs all four lanes down into a single 64-bit [Filter].
//
// Every bit [Filter256.Add] ever set survives the OR. The bits are the
// ones Filter256 chose, not the ones [Filter.Add] would set, so
// [Filter.MightContain] on the result can report false for an inserted
// hash (h = 0x100 sets bits 0 and 4, while Filter probes bits 0 and 1).
func (f Filter256) ToCompact() Filter {
	return Filter(f[0] | f[1] | f[2] | f[3])
}

// IsEmpty returns true iff no bit is set in any lane.
func (f Filter256) IsEmpty() bool {
	return f[0] == 0 && f[1] == 0 && f[2] == 0 && f[3] == 0
}
