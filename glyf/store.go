package glyf

import (
	"github.com/npillmayer/outline/ot"
)

// Source locates glyph records. It is implemented by OutlineStore and may be
// implemented by clients holding glyph data in other forms.
type Source interface {
	// Locate returns the byte range of glyph gid, or false if the glyph is
	// absent or its index entries are invalid.
	Locate(gid ot.GlyphIndex) (Range, bool)
	// Slice returns the bytes of a range obtained from Locate.
	Slice(r Range) []byte
	// GlyphCount returns the number of addressable glyphs.
	GlyphCount() int
}

// OutlineStore combines a loca index table with the glyph data it indexes.
// It never reads beyond the glyph data; invalid ranges make a glyph absent.
type OutlineStore struct {
	index IndexTable
	blob  []byte
	count int
}

var _ Source = (*OutlineStore)(nil)

// NewOutlineStore creates a store for glyph data blob.
// The glyph count is the number of index entries minus one, clamped to
// numGlyphs (usually taken from table 'maxp').
func NewOutlineStore(index IndexTable, blob []byte, numGlyphs int) *OutlineStore {
	count := max(1, index.Len()) - 1
	count = max(0, min(count, numGlyphs))
	if count < index.Len()-1 {
		tracer().Debugf("loca has %d entries, clamping to %d glyphs", index.Len(), count)
	}
	return &OutlineStore{index: index, blob: blob, count: count}
}

// GlyphCount returns the number of addressable glyphs.
func (s *OutlineStore) GlyphCount() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Index returns the index table of the store.
func (s *OutlineStore) Index() IndexTable {
	return s.index
}

// Locate returns the range of glyph gid within the glyph data.
// Glyphs with start > end or end beyond the data are absent.
func (s *OutlineStore) Locate(gid ot.GlyphIndex) (Range, bool) {
	if s == nil || int(gid) >= s.count {
		return Range{}, false
	}
	r, ok := s.index.Range(int(gid))
	if !ok || r.Start > r.End || r.End > uint32(len(s.blob)) {
		tracer().Debugf("glyph %d has invalid range %v", gid, r)
		return Range{}, false
	}
	return r, true
}

// Slice returns the bytes of r. The result has its capacity limited to its
// length, appending to it never overwrites glyph data.
func (s *OutlineStore) Slice(r Range) []byte {
	if r.Start > r.End || r.End > uint32(len(s.blob)) {
		return nil
	}
	return s.blob[r.Start:r.End:r.End]
}

// GlyphFor returns the glyph gid of src. Absent glyphs are returned as empty
// glyphs. If trim is set, padding after a simple glyph's data is removed.
func GlyphFor(src Source, gid ot.GlyphIndex, trim bool) Glyph {
	r, ok := src.Locate(gid)
	if !ok {
		return Glyph{gid: gid}
	}
	g := ParseGlyph(gid, src.Slice(r))
	if trim {
		return g.TrimPadding()
	}
	return g
}
