package glyf

import (
	"testing"

	"github.com/npillmayer/outline/internal/fonttest"
	"github.com/npillmayer/outline/ot"
)

// Glyphs of the test font:
//
//	0  empty
//	1  square (10,0)–(110,100)
//	2  triangle with an off-curve apex at (10,10)
//	3  composite: 1 offset by (200,50) with USE_MY_METRICS, 2 scaled by 1.5
//	4  composite: 1, 2 anchored at point 2 of the parent
//	5  composite: 3 offset by (0,-10), with instructions
//	6  composite referencing itself
var (
	square   = [][]fonttest.Point{fonttest.Square(10, 0, 100)}
	triangle = [][]fonttest.Point{{{X: 0, Y: 0, On: true}, {X: 10, Y: 10}, {X: 20, Y: 0, On: true}}}
	comps3   = []fonttest.Component{
		{Glyph: 1, Arg1: 200, Arg2: 50, Flags: fonttest.UseMyMetrics},
		{Glyph: 2, Scale: []float64{1.5}},
	}
	comps4 = []fonttest.Component{
		{Glyph: 1},
		{Glyph: 2, Anchor: true, Arg1: 2, Arg2: 0},
	}
	comps5 = []fonttest.Component{{Glyph: 3, Arg1: 0, Arg2: -10}}
	bb3    = [4]int16{0, 0, 310, 150}
	bb5    = [4]int16{0, -10, 310, 140}
)

func testFont() fonttest.Font {
	return fonttest.Font{
		Glyphs: [][]byte{
			nil,
			fonttest.SimpleGlyph(square, nil),
			fonttest.SimpleGlyph(triangle, nil),
			fonttest.CompositeGlyph(comps3, nil, bb3),
			fonttest.CompositeGlyph(comps4, nil, [4]int16{10, 0, 130, 110}),
			fonttest.CompositeGlyph(comps5, []byte{1, 2, 3}, bb5),
			fonttest.CompositeGlyph([]fonttest.Component{{Glyph: 6}}, nil, [4]int16{}),
		},
		Advances:  []uint16{500, 600, 300, 800, 700, 900, 500},
		AxisCount: 1,
	}
}

func loadFont(t *testing.T, f fonttest.Font) *ot.Font {
	t.Helper()
	otf, err := ot.Parse(f.Build())
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	return otf
}

func loadAccelerator(t *testing.T, f fonttest.Font) *Accelerator {
	t.Helper()
	return New(loadFont(t, f))
}

type shiftDeltas struct {
	dx, dy float32
	fail   bool
	calls  int
}

func (s *shiftDeltas) ApplyDeltas(gid ot.GlyphIndex, coords []float32, points []ContourPoint) bool {
	s.calls++
	if s.fail {
		return false
	}
	for i := range points {
		points[i].X += s.dx
		points[i].Y += s.dy
	}
	return true
}

func variable(d DeltaApplier) *Instance {
	return &Instance{Coords: []float32{0.5}, Deltas: d}
}

func xy(points []ContourPoint) [][2]float32 {
	r := make([][2]float32, len(points))
	for i, p := range points {
		r[i] = [2]float32{p.X, p.Y}
	}
	return r
}

func gidOf(n uint16) ot.GlyphIndex {
	return ot.GlyphIndex(n)
}
