package subset

import (
	"testing"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/internal/fonttest"
	"github.com/npillmayer/outline/ot"
	"github.com/stretchr/testify/require"
)

// Glyphs of the test font:
//
//	0  '.notdef', a square
//	1  empty
//	2  square with instructions
//	3  triangle with an off-curve apex, 21 bytes
//	4  composite: 2 offset by (200,0), 3
//	5  composite: 4 scaled by 0.5, with instructions
var (
	instructions = []byte{0xB0, 0x01, 0x2F, 0x2F, 0x2F}
	square       = [][]fonttest.Point{fonttest.Square(10, 0, 100)}
	triangle     = [][]fonttest.Point{{{X: 0, Y: 0, On: true}, {X: 10, Y: 10}, {X: 20, Y: 0, On: true}}}
	comps4       = []fonttest.Component{
		{Glyph: 2, Arg1: 200, Arg2: 0},
		{Glyph: 3},
	}
	comps5 = []fonttest.Component{{Glyph: 4, Scale: []float64{0.5}}}
)

func testFont() fonttest.Font {
	return fonttest.Font{
		Glyphs: [][]byte{
			fonttest.SimpleGlyph([][]fonttest.Point{fonttest.Square(50, 0, 400)}, nil),
			nil,
			fonttest.SimpleGlyph(square, instructions),
			fonttest.SimpleGlyph(triangle, nil),
			fonttest.CompositeGlyph(comps4, nil, [4]int16{0, 0, 310, 100}),
			fonttest.CompositeGlyph(comps5, []byte{0x2F}, [4]int16{0, 0, 155, 50}),
		},
		Advances: []uint16{500, 0, 600, 300, 800, 800},
		Extra: map[ot.Tag][]byte{
			ot.T("fpgm"): {0xB0, 0x00, 0x2C, 0x2D},
			ot.T("prep"): {0xB8, 0x01, 0xFF},
			ot.T("name"): {0, 0, 0, 0, 0, 6},
		},
	}
}

// bigGlyph creates a simple glyph of n points with word-sized coordinates,
// about 4 bytes per point.
func bigGlyph(n int) []byte {
	pts := make([]fonttest.Point, n)
	for i := range pts {
		if i%2 == 1 {
			pts[i] = fonttest.Point{X: 300, Y: 300, On: true}
		} else {
			pts[i] = fonttest.Point{On: true}
		}
	}
	return fonttest.SimpleGlyph([][]fonttest.Point{pts}, nil)
}

// bigFont has n big glyphs at 1…n, followed by a triangle.
func bigFont(n int) fonttest.Font {
	glyphs := [][]byte{nil}
	for range n {
		glyphs = append(glyphs, bigGlyph(2000))
	}
	glyphs = append(glyphs, fonttest.SimpleGlyph(triangle, nil))
	return fonttest.Font{Glyphs: glyphs, LongLoca: true}
}

func loadFont(t *testing.T, f fonttest.Font) *ot.Font {
	t.Helper()
	otf, err := ot.Parse(f.Build())
	require.NoError(t, err, "cannot parse test font")
	return otf
}

// subsetFont subsets otf for gids and parses the output.
func subsetFont(t *testing.T, otf *ot.Font, gids []ot.GlyphIndex, flags Flags) (*GlyphPlan, *ot.Font) {
	t.Helper()
	plan, err := NewPlan(otf, gids, WithFlags(flags))
	require.NoError(t, err)
	out, err := Subset(plan)
	require.NoError(t, err)
	result, err := ot.Parse(out)
	require.NoError(t, err, "cannot parse subset font")
	require.False(t, result.HasCriticalErrors())
	return plan, result
}

func gids(g ...ot.GlyphIndex) []ot.GlyphIndex {
	return g
}

func components(g glyf.Glyph) []ot.GlyphIndex {
	var comps []ot.GlyphIndex
	for c := range g.Components() {
		comps = append(comps, c.GlyphIndex)
	}
	return comps
}
