package glyf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestIndexTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.glyf")
	defer teardown()
	//
	offsets := []uint32{0, 4, 4, 10}
	for _, long := range []bool{false, true} {
		index := NewIndexTable(EncodeIndexTable(offsets, long), long)
		if index.Len() != 4 {
			t.Fatalf("expected 4 entries, have %d", index.Len())
		}
		for i, o := range offsets {
			if v, ok := index.Offset(i); !ok || v != o {
				t.Errorf("long=%v: expected entry %d to be %d, is %d", long, i, o, v)
			}
		}
		if _, ok := index.Offset(4); ok {
			t.Errorf("expected entry 4 to be out of range")
		}
		if r, ok := index.Range(2); !ok || r.Start != 4 || r.End != 10 || r.Len() != 6 {
			t.Errorf("expected range [4:10] for glyph 2, have %v", r)
		}
	}
	short := NewIndexTable([]byte{0, 0, 0, 2, 0xff}, false)
	if short.Len() != 2 {
		t.Errorf("expected trailing odd byte to be ignored, have %d entries", short.Len())
	}
	if v, _ := short.Offset(1); v != 4 {
		t.Errorf("expected short entry 2 to map to offset 4, is %d", v)
	}
}

func TestOutlineStoreLocate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.glyf")
	defer teardown()
	//
	blob := make([]byte, 8)
	index := NewIndexTable(EncodeIndexTable([]uint32{0, 4, 2, 10, 10}, true), true)
	store := NewOutlineStore(index, blob, 4)
	if store.GlyphCount() != 4 {
		t.Fatalf("expected 4 glyphs, have %d", store.GlyphCount())
	}
	cases := []struct {
		gid uint16
		ok  bool
	}{
		{0, true},  // [0:4]
		{1, false}, // start > end
		{2, false}, // end beyond blob
		{3, false}, // start beyond blob
		{4, false}, // gid >= count
	}
	for _, c := range cases {
		r, ok := store.Locate(gidOf(c.gid))
		if ok != c.ok {
			t.Errorf("glyph %d: expected ok=%v, have %v (%v)", c.gid, c.ok, ok, r)
		}
	}
	r, _ := store.Locate(0)
	b := store.Slice(r)
	if len(b) != 4 || cap(b) != 4 {
		t.Errorf("expected slice of length and capacity 4, have %d/%d", len(b), cap(b))
	}
	if g := GlyphFor(store, 2, true); !g.IsEmpty() || g.GID() != 2 {
		t.Errorf("expected absent glyph to be returned as empty glyph")
	}
}

func TestOutlineStoreGlyphCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.glyf")
	defer teardown()
	//
	index := NewIndexTable(EncodeIndexTable([]uint32{0, 2, 4, 6}, false), false)
	cases := []struct{ numGlyphs, count int }{
		{3, 3}, {2, 2}, {10, 3}, {0, 0},
	}
	for _, c := range cases {
		if n := NewOutlineStore(index, make([]byte, 6), c.numGlyphs).GlyphCount(); n != c.count {
			t.Errorf("numGlyphs=%d: expected count %d, have %d", c.numGlyphs, c.count, n)
		}
	}
	empty := NewOutlineStore(NewIndexTable(nil, false), nil, 5)
	if empty.GlyphCount() != 0 {
		t.Errorf("expected empty index to have no glyphs")
	}
	var nilStore *OutlineStore
	if nilStore.GlyphCount() != 0 {
		t.Errorf("expected nil store to have no glyphs")
	}
}
