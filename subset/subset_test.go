package subset

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/internal/fonttest"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/sfnt/cmap"
)

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "none", Flags(0).String())
	assert.Equal(t, "no-hinting|retain-gids", (FlagNoHinting | FlagRetainGIDs).String())
}

func TestPlanClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, err := NewPlan(otf, gids(5))
	require.NoError(t, err)
	assert.Equal(t, gids(0, 2, 3, 4, 5), plan.OldGIDs())
	assert.Equal(t, 5, plan.NumOutputGlyphs())
	gid, ok := plan.NewGIDForOldGID(5)
	assert.True(t, ok)
	assert.Equal(t, ot.GlyphIndex(4), gid)
	old, ok := plan.OldGIDForNewGID(1)
	assert.True(t, ok)
	assert.Equal(t, ot.GlyphIndex(2), old)
	_, ok = plan.NewGIDForOldGID(1)
	assert.False(t, ok)
	//
	plan, err = NewPlan(otf, gids(3, 99))
	require.NoError(t, err)
	assert.Equal(t, gids(0, 3), plan.OldGIDs(), "out-of-range glyphs are ignored")
	assert.Equal(t, 2, plan.NumOutputGlyphs())
}

func TestPlanRetainGIDs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, err := NewPlan(otf, gids(3), WithFlags(FlagRetainGIDs))
	require.NoError(t, err)
	assert.Equal(t, 4, plan.NumOutputGlyphs())
	assert.Equal(t, 2, plan.GlyphCount())
	gid, ok := plan.NewGIDForOldGID(3)
	assert.True(t, ok)
	assert.Equal(t, ot.GlyphIndex(3), gid)
	_, ok = plan.OldGIDForNewGID(1)
	assert.False(t, ok)
	//
	_, result := subsetFont(t, otf, gids(3), FlagRetainGIDs|FlagNotdefOutline)
	acc := glyf.New(result)
	src := glyf.New(otf)
	require.Equal(t, 4, acc.GlyphCount())
	assert.True(t, acc.Glyph(1).IsEmpty())
	assert.True(t, acc.Glyph(2).IsEmpty())
	assert.Empty(t, cmp.Diff(src.GlyphTrimmed(3).Bytes(), acc.GlyphTrimmed(3).Bytes()))
}

func TestPlanErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	_, err := NewPlan(nil, gids(1))
	assert.ErrorIs(t, err, ErrNoSource)
	fb := ot.NewFontBuilder()
	fb.AddTable(ot.T("head"), fonttest.Head(1000, false))
	fb.AddTable(ot.T("maxp"), fonttest.MaxP(3))
	b, err := fb.Build()
	require.NoError(t, err)
	otf, err := ot.Parse(b)
	require.NoError(t, err)
	_, err = NewPlan(otf, gids(1))
	assert.ErrorIs(t, err, ErrNoOutlines)
	_, err = Subset(nil)
	assert.Error(t, err)
}

func TestSubsetRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, result := subsetFont(t, otf, gids(3, 2), 0)
	assert.Equal(t, 3, result.NumGlyphs())
	src, acc := glyf.New(otf), glyf.New(result)
	require.Equal(t, 3, acc.GlyphCount())
	assert.True(t, acc.Glyph(0).IsEmpty(), ".notdef has to be empty by default")
	for _, old := range gids(2, 3) {
		gid, _ := plan.NewGIDForOldGID(old)
		if diff := cmp.Diff(src.GlyphTrimmed(old).Bytes(), acc.GlyphTrimmed(gid).Bytes()); diff != "" {
			t.Errorf("glyph %d→%d differs (-source +subset):\n%s", old, gid, diff)
		}
		assert.Equal(t, src.Metrics().Advance(old, false), acc.Metrics().Advance(gid, false))
	}
	glyfTable, ok := plan.Table(ot.T("glyf"))
	require.True(t, ok)
	assert.Equal(t, result.Table(ot.T("glyf")).Binary(), glyfTable)
	for _, tag := range []string{"loca", "head", "maxp", "hhea", "hmtx", "cmap", "name", "fpgm", "prep"} {
		assert.NotNil(t, result.Table(ot.T(tag)), "expected table %s in output", tag)
	}
}

func TestStripHinting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, result := subsetFont(t, otf, gids(2, 5), FlagNoHinting)
	src, acc := glyf.New(otf), glyf.New(result)
	for _, old := range gids(2, 5) {
		gid, _ := plan.NewGIDForOldGID(old)
		g, h := src.GlyphTrimmed(old), acc.GlyphTrimmed(gid)
		n := len(g.Instructions())
		require.NotZero(t, n)
		if g.Kind() == glyf.Composite {
			n += 2
		}
		assert.Equal(t, len(g.Bytes())-n, len(h.Bytes()), "glyph %d", old)
		assert.Empty(t, h.Instructions())
		for c := range h.Components() {
			assert.False(t, c.HasInstructions())
		}
	}
	// outlines are unchanged
	p1, ok := src.Path(nil, 5)
	require.True(t, ok)
	gid, _ := plan.NewGIDForOldGID(5)
	p2, ok := acc.Path(nil, gid)
	require.True(t, ok)
	assert.Equal(t, p1.String(), p2.String())
	// hinting tables are dropped
	assert.Nil(t, result.Table(ot.T("fpgm")))
	assert.Nil(t, result.Table(ot.T("prep")))
	maxp := result.Table(ot.T("maxp")).Binary()
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(maxp[14:]), "maxZones")
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(maxp[20:]), "maxFunctionDefs")
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(maxp[26:]), "maxSizeOfInstructions")
}

func TestShortLocaOffsetsAreEven(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	_, result := subsetFont(t, otf, gids(1, 2, 3, 4, 5), FlagNotdefOutline)
	assert.Equal(t, uint16(0), result.Head.IndexToLocFormat)
	loca := glyf.NewIndexTable(result.Table(ot.T("loca")).Binary(), false)
	require.Equal(t, 7, loca.Len())
	for i := range loca.Len() {
		off, ok := loca.Offset(i)
		require.True(t, ok)
		assert.Zero(t, off%2, "offset %d of glyph %d is odd", off, i)
	}
	// the triangle has odd length and is padded
	r, ok := loca.Range(3)
	require.True(t, ok)
	assert.Equal(t, 22, r.Len())
}

func TestLongLoca(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, bigFont(20))
	all := make([]ot.GlyphIndex, 22)
	for i := range all {
		all[i] = ot.GlyphIndex(i)
	}
	_, result := subsetFont(t, otf, all, 0)
	assert.Equal(t, uint16(1), result.Head.IndexToLocFormat)
	head := result.Table(ot.T("head")).Binary()
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(head[ot.HeadIndexToLocFormatOffset:]))
	locaData := result.Table(ot.T("loca")).Binary()
	assert.Equal(t, 4*23, len(locaData))
	loca := glyf.NewIndexTable(locaData, true)
	r, ok := loca.Range(21)
	require.True(t, ok)
	assert.Equal(t, 21, r.Len(), "long loca stores unpadded lengths")
	src, acc := glyf.New(otf), glyf.New(result)
	assert.Empty(t, cmp.Diff(src.Glyph(7).Bytes(), acc.Glyph(7).Bytes()))
	//
	// few big glyphs fit into short loca
	_, result = subsetFont(t, otf, gids(1, 2), 0)
	assert.Equal(t, uint16(0), result.Head.IndexToLocFormat)
	assert.Equal(t, 2*4, len(result.Table(ot.T("loca")).Binary()))
}

func TestLocaFormatBoundary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	// a composite with one byte-sized component and n instruction bytes
	// has 18+n bytes
	composite := func(size int) []byte {
		return fonttest.CompositeGlyph([]fonttest.Component{{Glyph: 0}}, make([]byte, size-18), [4]int16{})
	}
	for _, tc := range []struct {
		second int
		format uint16
		loca   int
	}{
		{second: 65534, format: 0, loca: 2 * 4},
		{second: 65536, format: 1, loca: 4 * 4},
	} {
		f := fonttest.Font{Glyphs: [][]byte{nil, composite(65534), composite(tc.second)}, LongLoca: true}
		otf := loadFont(t, f)
		_, result := subsetFont(t, otf, gids(1, 2), 0)
		total := 65534 + tc.second
		assert.Equal(t, tc.format, result.Head.IndexToLocFormat, "glyf of %d bytes", total)
		assert.Equal(t, total, len(result.Table(ot.T("glyf")).Binary()))
		assert.Equal(t, tc.loca, len(result.Table(ot.T("loca")).Binary()))
		acc := glyf.New(result)
		assert.Equal(t, tc.second, len(acc.Glyph(2).Bytes()))
	}
}

func TestCommittedHeadKeepsChecksum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, err := NewPlan(otf, gids(2))
	require.NoError(t, err)
	src, ok := plan.Cache().Table(ot.T("head"))
	require.True(t, ok)
	adjust := binary.BigEndian.Uint32(src[ot.HeadCheckSumAdjustmentOffset:])
	require.NotZero(t, adjust)
	out, err := Subset(plan)
	require.NoError(t, err)
	head, ok := plan.Table(ot.T("head"))
	require.True(t, ok)
	assert.Equal(t, adjust, binary.BigEndian.Uint32(head[ot.HeadCheckSumAdjustmentOffset:]),
		"head added to the plan must not be patched by the font writer")
	result, err := ot.Parse(out)
	require.NoError(t, err)
	written := result.Table(ot.T("head")).Binary()
	assert.NotZero(t, binary.BigEndian.Uint32(written[ot.HeadCheckSumAdjustmentOffset:]))
}

func TestCmapAndPost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	data := buildCmap(map[rune]ot.GlyphIndex{'A': 1, 'B': 2, 'C': 3, 'x': 7, 0x1F600: 9})
	table, err := cmap.Decode(data)
	require.NoError(t, err)
	require.Len(t, table, 2)
	uni := table[cmap.Key{PlatformID: 0, EncodingID: 4}]
	win := table[cmap.Key{PlatformID: 3, EncodingID: 10}]
	require.NotNil(t, uni)
	assert.Equal(t, uni, win)
	assert.Equal(t, uint16(12), binary.BigEndian.Uint16(uni))
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(uni[12:]), "consecutive runes share a group")
	//
	src := make([]byte, 40)
	binary.BigEndian.PutUint32(src, 0x00020000)
	binary.BigEndian.PutUint32(src[4:], 0xFFF40000) // italic angle -12
	binary.BigEndian.PutUint16(src[8:], uint16(0xFF9C))
	binary.BigEndian.PutUint16(src[10:], 50)
	binary.BigEndian.PutUint32(src[12:], 1)
	out := subsetPost(src)
	require.Len(t, out, 32)
	assert.Equal(t, uint32(0x00030000), binary.BigEndian.Uint32(out))
	assert.Equal(t, src[4:16], out[4:16])
}

func TestEmptyGlyf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, err := NewPlan(otf, gids(1))
	require.NoError(t, err)
	_, err = Subset(plan)
	require.NoError(t, err)
	glyfTable, _ := plan.Table(ot.T("glyf"))
	assert.Equal(t, []byte{0}, glyfTable)
	loca, _ := plan.Table(ot.T("loca"))
	assert.Equal(t, make([]byte, 6), loca)
}

func TestCompositeRemap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, result := subsetFont(t, otf, gids(4), 0)
	assert.Equal(t, gids(0, 2, 3, 4), plan.OldGIDs())
	src, acc := glyf.New(otf), glyf.New(result)
	assert.Equal(t, gids(2, 3), components(src.Glyph(4)))
	assert.Equal(t, gids(1, 2), components(acc.Glyph(3)))
	p1, ok := src.Path(nil, 4)
	require.True(t, ok)
	p2, ok := acc.Path(nil, 3)
	require.True(t, ok)
	assert.Equal(t, p1.String(), p2.String())
}

func TestNotdefOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	_, result := subsetFont(t, otf, gids(3), FlagNotdefOutline)
	src, acc := glyf.New(otf), glyf.New(result)
	assert.False(t, acc.Glyph(0).IsEmpty())
	assert.Empty(t, cmp.Diff(src.GlyphTrimmed(0).Bytes(), acc.GlyphTrimmed(0).Bytes()))
}

func TestSetOverlapsFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, result := subsetFont(t, otf, gids(2, 4), FlagSetOverlapsFlag)
	acc := glyf.New(result)
	gid, _ := plan.NewGIDForOldGID(2)
	g := acc.Glyph(gid)
	firstFlag := 10 + 2 + 2 + len(instructions)
	assert.NotZero(t, g.Bytes()[firstFlag]&glyf.FlagOverlapSimple)
	gid, _ = plan.NewGIDForOldGID(4)
	for c := range acc.Glyph(gid).Components() {
		assert.NotZero(t, c.Flags&glyf.OverlapCompound)
		break
	}
}

func TestMetricsTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	f := testFont()
	f.Vertical = []uint16{1000, 1000, 1000, 1000, 1000, 1000}
	otf := loadFont(t, f)
	_, result := subsetFont(t, otf, gids(3), 0)
	require.NotNil(t, result.HMtx)
	assert.Equal(t, 2, result.HHea.NumberOfLongMetrics)
	adv, lsb, ok := result.HMtx.HMetrics(1)
	assert.True(t, ok)
	assert.Equal(t, uint16(300), adv)
	assert.Equal(t, int16(0), lsb)
	require.NotNil(t, result.VMtx)
	assert.Equal(t, 1, result.VHea.NumberOfLongMetrics, "equal advances are compressed")
	adv, _, ok = result.VMtx.VMetrics(1)
	assert.True(t, ok)
	assert.Equal(t, uint16(1000), adv)
	//
	_, result = subsetFont(t, otf, gids(2, 5), 0)
	assert.Equal(t, 4, result.HHea.NumberOfLongMetrics)
	assert.Equal(t, uint16(800), result.HHea.AdvanceMax)
	adv, _, _ = result.HMtx.HMetrics(4)
	assert.Equal(t, uint16(800), adv)
}

func TestSubsetIsAtomic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	f := testFont()
	f.Extra[ot.T("head")] = make([]byte, 54) // no magic number
	otf := loadFont(t, f)
	plan, err := NewPlan(otf, gids(2))
	require.NoError(t, err)
	_, err = Subset(plan)
	assert.ErrorIs(t, err, ErrSubsetFailed)
	_, ok := plan.Table(ot.T("maxp"))
	assert.False(t, ok, "a failed run must not add tables")
}

type rejectingPlan struct {
	*GlyphPlan
}

func (rejectingPlan) AddTable(ot.Tag, []byte) bool {
	return false
}

func TestSerializeGlyfErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, err := NewPlan(otf, gids(2))
	require.NoError(t, err)
	head, ok := plan.Cache().Table(ot.T("head"))
	require.True(t, ok)
	err = SerializeGlyf(rejectingPlan{plan}, plan.Accelerator(), head)
	assert.ErrorIs(t, err, ErrTableRejected)
	err = SerializeGlyf(plan, plan.Accelerator(), head[:20])
	assert.Error(t, err)
	require.NoError(t, SerializeGlyf(plan, plan.Accelerator(), head))
	out, _ := plan.Table(ot.T("head"))
	assert.Equal(t, len(head), len(out))
	assert.NotSame(t, &head[0], &out[0], "source head must not be patched in place")
}

func TestSubsetGlyphSerialize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.subset")
	defer teardown()
	//
	otf := loadFont(t, testFont())
	plan, err := NewPlan(otf, gids(4))
	require.NoError(t, err)
	src := plan.Accelerator().Glyph(3)
	sg := SubsetGlyph{NewGID: 2, OldGID: 3, Source: src, Start: src.Bytes()}
	assert.Equal(t, 21, sg.Length())
	assert.Equal(t, 22, sg.PaddedSize())
	buf := sg.Serialize([]byte{0xFF}, true, plan)
	assert.Equal(t, 23, len(buf))
	buf = sg.Serialize(nil, false, plan)
	assert.Equal(t, 21, len(buf))
	//
	comp := plan.Accelerator().Glyph(4)
	sg = SubsetGlyph{NewGID: 3, OldGID: 4, Source: comp, Start: comp.Bytes()}
	buf = sg.Serialize(nil, true, plan)
	assert.Equal(t, gids(1, 2), components(glyf.ParseGlyph(3, buf)))
	assert.Equal(t, gids(2, 3), components(comp), "source glyph must not be modified")
}
