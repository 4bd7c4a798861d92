package atom

// FNV-1a, 32-bit, exactly as required: seed 2166136261, prime 16777619,
// byte-by-byte XOR-then-multiply. Every caller that needs a stable content
// hash - runtime interning, Bloom insertion, and the precomputed keyword
// ids in keywords.go - must go through this one function so the three
// stay consistent by construction.
const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// Hash computes the FNV-1a hash of b.
func Hash(b []byte) uint32 {
	h := uint32(fnvOffset32)

	for _, c := range b {
		h ^= uint32(c)
		h *= fnvPrime32
	}

	return h
}

// HashString is Hash for a string, avoiding the []byte conversion's copy.
func HashString(s string) uint32 {
	h := uint32(fnvOffset32)

	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}

	return h
}
