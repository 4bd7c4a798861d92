// Package zc provides helpers for working with zero-copy ranges.
//
// A [View] is the packed (offset, length) addressing scheme the spec
// requires of the atom table's entry array ("a dense entry array {hash,
// offset, len, next} indexing into a single contiguous byte arena") and,
// by extension, of the flat tree's shared classes/attributes/text stores.
package zc

import (
	"fmt"
	"math"

	"github.com/flier/cssmatch/internal/debug"
)

// View is a representation of a []byte as a slice relative to some larger
// byte array, such as an atom table's byte arena.
//
// This is a packed representation of a value with the layout
//
//	struct {
//	  offset, length uint32
//	}
//
// The zero value faithfully represents an empty slice.
type View uint64

// Raw creates a new View from the given offset and length.
func Raw(offset, len int) View {
	debug.Assert(offset <= math.MaxUint32 && len <= math.MaxUint32,
		"offset too large for zc: [%d:%d]", offset, len)
	return View(uint32(offset)) | View(uint32(len))<<32
}

// Start returns the start offset of this slice within its source.
func (r View) Start() int { return int(uint32(r)) }

// End returns the end offset of this slice within its source.
func (r View) End() int { return r.Start() + r.Len() }

// Len returns the length of this View.
func (r View) Len() int { return int(r >> 32) }

// Bytes converts this View into a byte slice, given its source arena.
func (r View) Bytes(src []byte) []byte {
	if r.Len() == 0 {
		return nil
	}
	return src[r.Start():r.End():r.End()]
}

// Format implements [fmt.Formatter].
func (r View) Format(s fmt.State, verb rune) {
	debug.Fprintf("[%d:%d]", r.Start(), r.End()).Format(s, verb)
}
