package glyf

import (
	"fmt"
	"math"
)

// Pen receives the segments of a glyph outline. ClosePath closes the current
// contour with a straight line back to its start point, if necessary.
// *vector.Rasterizer of golang.org/x/image satisfies Pen.
type Pen interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	ClosePath()
}

// Point is a point of a path.
type Point struct {
	X, Y float32
}

func (p Point) lerp(q Point, t float32) Point {
	return Point{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
}

// SegmentOp is the operation of a path segment.
type SegmentOp uint8

// Path segment operations.
const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	ClosePath
)

func (op SegmentOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case ClosePath:
		return "Z"
	}
	return "?"
}

// Segment is a path segment. QuadTo uses Args[0] as the control point and
// Args[1] as the end point, MoveTo and LineTo use Args[0].
type Segment struct {
	Op   SegmentOp
	Args [2]Point
}

func (s Segment) String() string {
	switch s.Op {
	case MoveTo, LineTo:
		return fmt.Sprintf("%s%g,%g", s.Op, s.Args[0].X, s.Args[0].Y)
	case QuadTo:
		return fmt.Sprintf("Q%g,%g %g,%g", s.Args[0].X, s.Args[0].Y, s.Args[1].X, s.Args[1].Y)
	}
	return s.Op.String()
}

// Path records the segments drawn to it. *Path is a Pen.
type Path struct {
	Segments []Segment
}

var _ Pen = (*Path)(nil)

// MoveTo starts a new contour.
func (p *Path) MoveTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: MoveTo, Args: [2]Point{{x, y}}})
}

// LineTo adds a line segment.
func (p *Path) LineTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: LineTo, Args: [2]Point{{x, y}}})
}

// QuadTo adds a quadratic Bézier segment.
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: QuadTo, Args: [2]Point{{cx, cy}, {x, y}}})
}

// ClosePath closes the current contour.
func (p *Path) ClosePath() {
	p.Segments = append(p.Segments, Segment{Op: ClosePath})
}

// Draw replays the path to pen.
func (p *Path) Draw(pen Pen) {
	for _, s := range p.Segments {
		switch s.Op {
		case MoveTo:
			pen.MoveTo(s.Args[0].X, s.Args[0].Y)
		case LineTo:
			pen.LineTo(s.Args[0].X, s.Args[0].Y)
		case QuadTo:
			pen.QuadTo(s.Args[0].X, s.Args[0].Y, s.Args[1].X, s.Args[1].Y)
		case ClosePath:
			pen.ClosePath()
		}
	}
}

// Bounds returns the bounding box of all points of the path, including
// control points. An empty path returns false.
func (p *Path) Bounds() (lo, hi Point, ok bool) {
	lo = Point{math.MaxFloat32, math.MaxFloat32}
	hi = Point{-math.MaxFloat32, -math.MaxFloat32}
	add := func(q Point) {
		lo.X, lo.Y = min(lo.X, q.X), min(lo.Y, q.Y)
		hi.X, hi.Y = max(hi.X, q.X), max(hi.Y, q.Y)
		ok = true
	}
	for _, s := range p.Segments {
		switch s.Op {
		case MoveTo, LineTo:
			add(s.Args[0])
		case QuadTo:
			add(s.Args[0])
			add(s.Args[1])
		}
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return lo, hi, true
}

func (p *Path) String() string {
	s := ""
	for i, seg := range p.Segments {
		if i > 0 {
			s += " "
		}
		s += seg.String()
	}
	return s
}

// --- Path builder ----------------------------------------------------------

// optPoint is a point which may be unset.
type optPoint struct {
	Point
	set bool
}

func (o *optPoint) put(p Point) {
	o.Point, o.set = p, true
}

// PathBuilder converts the contour points of a TrueType outline into pen
// operations. Consecutive off-curve points imply an on-curve point midway
// between them. A contour may start with an off-curve point, in which case
// its start point is found at the first on-curve point or, if the contour
// has none, midway between its first and last points.
type PathBuilder struct {
	pen      Pen
	sx, sy   float32
	firstOn  optPoint
	firstOff optPoint
	lastOff  optPoint
}

// NewPathBuilder creates a builder drawing to pen. Coordinates are
// multiplied by sx and sy.
func NewPathBuilder(pen Pen, sx, sy float32) *PathBuilder {
	return &PathBuilder{pen: pen, sx: sx, sy: sy}
}

// ConsumePoints feeds a sequence of contour points to the builder.
// Phantom points must not be included.
func (b *PathBuilder) ConsumePoints(points []ContourPoint) {
	for _, p := range points {
		b.ConsumePoint(p)
	}
}

// ConsumePoint feeds a single contour point to the builder.
func (b *PathBuilder) ConsumePoint(cp ContourPoint) {
	p := Point{X: cp.X * b.sx, Y: cp.Y * b.sy}
	if !b.firstOn.set {
		// still searching for the start of the contour
		if cp.OnCurve() {
			b.firstOn.put(p)
			b.pen.MoveTo(p.X, p.Y)
		} else if !b.firstOff.set {
			b.firstOff.put(p)
		} else {
			mid := b.firstOff.lerp(p, .5)
			b.firstOn.put(mid)
			b.lastOff.put(p)
			b.pen.MoveTo(mid.X, mid.Y)
		}
	} else if b.lastOff.set {
		if cp.OnCurve() {
			b.pen.QuadTo(b.lastOff.X, b.lastOff.Y, p.X, p.Y)
			b.lastOff.set = false
		} else {
			mid := b.lastOff.lerp(p, .5)
			b.pen.QuadTo(b.lastOff.X, b.lastOff.Y, mid.X, mid.Y)
			b.lastOff.put(p)
		}
	} else if cp.OnCurve() {
		b.pen.LineTo(p.X, p.Y)
	} else {
		b.lastOff.put(p)
	}
	if cp.EndPoint {
		b.closeContour()
	}
}

func (b *PathBuilder) closeContour() {
	if b.firstOff.set && b.lastOff.set {
		mid := b.lastOff.lerp(b.firstOff.Point, .5)
		b.pen.QuadTo(b.lastOff.X, b.lastOff.Y, mid.X, mid.Y)
		b.lastOff.set = false
	}
	switch {
	case b.firstOff.set && b.firstOn.set:
		b.pen.QuadTo(b.firstOff.X, b.firstOff.Y, b.firstOn.X, b.firstOn.Y)
	case b.lastOff.set && b.firstOn.set:
		b.pen.QuadTo(b.lastOff.X, b.lastOff.Y, b.firstOn.X, b.firstOn.Y)
	case b.firstOn.set:
		// the closing line is implied by ClosePath
	case b.firstOff.set:
		// contour of a single off-curve point
		b.pen.MoveTo(b.firstOff.X, b.firstOff.Y)
		b.pen.QuadTo(b.firstOff.X, b.firstOff.Y, b.firstOff.X, b.firstOff.Y)
	}
	b.firstOn.set, b.firstOff.set, b.lastOff.set = false, false, false
	b.pen.ClosePath()
}
