package glyf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func contour(pts ...ContourPoint) []ContourPoint {
	pts[len(pts)-1].EndPoint = true
	return pts
}

func on(x, y float32) ContourPoint  { return ContourPoint{X: x, Y: y, Flag: FlagOnCurve} }
func off(x, y float32) ContourPoint { return ContourPoint{X: x, Y: y} }

func TestPathBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.glyf")
	defer teardown()
	//
	cases := []struct {
		name     string
		points   []ContourPoint
		expected string
	}{
		{"quadratic", contour(on(0, 0), off(10, 10), on(20, 0)),
			"M0,0 Q10,10 20,0 Z"},
		{"lines", contour(on(0, 0), on(0, 10), on(10, 10)),
			"M0,0 L0,10 L10,10 Z"},
		{"implied on-curve", contour(on(0, 0), off(10, 10), off(20, 10), on(30, 0)),
			"M0,0 Q10,10 15,10 Q20,10 30,0 Z"},
		{"two off-curve", contour(on(0, 0), off(0, 10), off(10, 0), on(10, 10)),
			"M0,0 Q0,10 5,5 Q10,0 10,10 Z"},
		{"closing off-curve", contour(on(0, 0), on(10, 0), off(10, 10)),
			"M0,0 L10,0 Q10,10 0,0 Z"},
		{"off-curve start", contour(off(0, 0), on(10, 0), on(10, 10)),
			"M10,0 L10,10 Q0,0 10,0 Z"},
		{"two off-curve start", contour(off(0, 0), off(10, 0), on(10, 10)),
			"M5,0 Q10,0 10,10 Q0,0 5,0 Z"},
		{"no on-curve", contour(off(0, 0), off(10, 0), off(10, 10)),
			"M5,0 Q10,0 10,5 Q10,10 5,5 Q0,0 5,0 Z"},
		{"single off-curve", contour(off(3, 4)),
			"M3,4 Q3,4 3,4 Z"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := &Path{}
			NewPathBuilder(path, 1, 1).ConsumePoints(c.points)
			if path.String() != c.expected {
				t.Errorf("expected path %q, have %q", c.expected, path.String())
			}
		})
	}
}

func TestPathBuilderContours(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "outline.glyf")
	defer teardown()
	//
	points := append(contour(on(0, 0), on(0, 10), on(10, 0)), contour(off(1, 1))...)
	path := &Path{}
	NewPathBuilder(path, 2, .5).ConsumePoints(points)
	expected := "M0,0 L0,5 L20,0 Z M2,0.5 Q2,0.5 2,0.5 Z"
	if path.String() != expected {
		t.Errorf("expected path %q, have %q", expected, path.String())
	}
	lo, hi, ok := path.Bounds()
	if !ok || lo != (Point{0, 0}) || hi != (Point{20, 5}) {
		t.Errorf("unexpected bounds %v–%v", lo, hi)
	}
	replay := &Path{}
	path.Draw(replay)
	if replay.String() != expected {
		t.Errorf("expected replayed path to equal original, have %q", replay.String())
	}
	if _, _, ok := (&Path{}).Bounds(); ok {
		t.Errorf("expected empty path to have no bounds")
	}
}
