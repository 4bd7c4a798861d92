package bloom

import "github.com/greatroar/blobloom"

// DocumentFilter is a session-wide, coarse pre-filter over every atom hash
// that occurs anywhere in a document's tag/id/class set.
//
// It is additive, not a replacement for the per-node [Filter] the spec
// mandates (§3's ancestor-Bloom invariant): a session can reject "this
// whole document cannot contain a node with this class" in one check,
// before ever walking the tree to ask "which node." Built on
// [github.com/greatroar/blobloom]'s blocked Bloom filter, which is tuned
// for exactly this larger-n, lower-false-positive-rate regime, as opposed
// to the tiny fixed-width per-node filter above.
type DocumentFilter struct {
	f *blobloom.Filter
}

// NewDocumentFilter sizes a DocumentFilter for an expected nKeys distinct
// atom hashes at the given target false-positive rate.
func NewDocumentFilter(nKeys int, fpRate float64) *DocumentFilter {
	return &DocumentFilter{
		f: blobloom.NewOptimized(blobloom.Config{
			NKeys:  nKeys,
			FPRate: fpRate,
		}),
	}
}

// Add records that hash h occurs somewhere in the document.
func (d *DocumentFilter) Add(h uint32) { d.f.Add(uint64(h)) }

// MightContain returns true iff h may occur somewhere in the document.
func (d *DocumentFilter) MightContain(h uint32) bool { return d.f.Has(uint64(h)) }

// Clear empties the filter for reuse against the next document in a
// recycled session.
func (d *DocumentFilter) Clear() { d.f.Clear() }
