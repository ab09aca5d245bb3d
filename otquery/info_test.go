package otquery

import (
	"testing"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/internal/fontload"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf  *ot.Font
	acc  *glyf.Accelerator
	sfnt *fontload.ScalableFont
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.query")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("outline.query").SetTraceLevel(tracing.LevelError)
	otf, err := ot.Parse(goregular.TTF)
	env.Require().NoError(err, "cannot parse Go Regular")
	env.otf = otf
	env.acc = glyf.New(otf)
	env.sfnt, err = fontload.ParseOpenTypeFont(goregular.TTF)
	env.Require().NoError(err)
	tracing.Select("outline.query").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.otf)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	info := NameInfo(env.otf)
	env.T().Logf("info = %v", info)
	fam, ok := info["family"]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Equal("Go", fam, "expected font family name 'Go'")
	env.Equal("Regular", info["subfamily"])
	n := 0
	for r := range NameRecords(env.otf) {
		env.NotEmpty(r.Value, "name record %d of platform %d", r.Name, r.Platform)
		n++
	}
	env.Greater(n, 3)
	pairs := 0
	for range NamesRange(env.otf) {
		pairs++
	}
	env.Equal(n, pairs)
	env.Empty(NameInfo(nil))
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")

	headTable := env.otf.Table(ot.T("head")).Self().AsHead()
	env.Require().NotNil(headTable, "expected parsed HeadTable")

	env.Equal(headTable.Flags, h.Flags, "expected matching Flags")
	env.Equal(headTable.UnitsPerEm, h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(headTable.IndexToLocFormat), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.True(h.IsValid(), "expected OpenType head magic number")
	env.Greater(h.ModifiedAt().Year(), 2000)
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")

	maxpTable := env.otf.Table(ot.T("maxp")).Self().AsMaxP()
	env.Require().NotNil(maxpTable, "expected parsed MaxPTable")

	env.Equal(uint16(maxpTable.NumGlyphs), m.NumGlyphs, "expected matching numGlyphs")
	env.True(m.HasExtendedProfile, "expected TrueType profile")
	env.NotZero(m.MaxPoints)
}

func (env *InfoTestEnviron) TestOutlineTables() {
	tables := OutlineTables(env.otf)
	env.T().Logf("test font outline tables: %v", tables)
	for _, reqt := range []string{"head", "maxp", "loca", "glyf", "hhea", "hmtx"} {
		env.Contains(tables, reqt, "expected test font to contain table %s", reqt)
	}
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	var buf sfnt.Buffer
	ppem := fixed.I(int(m.UnitsPerEm))
	fm, err := env.sfnt.SFNT.Metrics(&buf, ppem, 0)
	env.Require().NoError(err)
	env.Equal(fm.Ascent.Round(), int(m.Ascent))
	env.Equal(fm.Descent.Round(), -int(m.Descent))
	env.NotZero(m.MaxAdvance)
}

func (env *InfoTestEnviron) TestLocaInfo() {
	info, ok := LocaInfo(env.otf, env.acc)
	env.Require().True(ok)
	env.Equal(env.otf.NumGlyphs(), info.GlyphCount)
	env.Equal(info.GlyphCount+1, info.Entries)
	env.Equal(info.GlyphCount, info.Empty+info.Simple+info.Composite)
	env.NotZero(info.Simple)
	_, ok = LocaInfo(env.otf, nil)
	env.False(ok)
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	gid, err := env.sfnt.GlyphIndex('H')
	env.Require().NoError(err)
	m := GlyphMetrics(env.acc, gid)
	env.T().Logf("metrics of 'H': %v", m)
	env.Equal(glyf.Simple, m.Kind)
	env.Equal(m.Advance, m.LSB+m.BBox.Dx()+m.RSB)
	env.NotZero(m.Points)
	env.Equal(0, m.Components)
	var buf sfnt.Buffer
	ppem := fixed.I(int(env.otf.UnitsPerEm()))
	adv, err := env.sfnt.SFNT.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), ppem, 0)
	env.Require().NoError(err)
	env.Equal(adv.Round(), int(m.Advance))
	//
	bbox, ok := GlyphExtents(env.acc, nil, gid)
	env.Require().True(ok)
	env.Equal(m.BBox.Dx(), bbox.Dx())
	env.Equal(m.BBox.MaxY, bbox.MaxY)
	//
	space, err := env.sfnt.GlyphIndex(' ')
	env.Require().NoError(err)
	m = GlyphMetrics(env.acc, space)
	env.Equal(glyf.Empty, m.Kind)
	env.Zero(m.RSB)
	env.Zero(GlyphMetrics(env.acc, 0xFFFF).Advance)
}
