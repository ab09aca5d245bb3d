package glyf

import (
	"fmt"
	"math"

	"github.com/npillmayer/outline/ot"
)

// Extents is the ink box of a glyph, relative to its origin.
// Following font conventions, YBearing is the top of the box and Height is
// negative for glyphs extending downwards from it.
type Extents struct {
	XBearing, YBearing float32
	Width, Height      float32
}

func (e Extents) String() string {
	return fmt.Sprintf("extents(x=%g, y=%g, w=%g, h=%g)", e.XBearing, e.YBearing, e.Width, e.Height)
}

// bounds accumulates the bounding box of contour points.
type bounds struct {
	minX, minY, maxX, maxY float32
}

func newBounds() bounds {
	return bounds{
		minX: math.MaxFloat32, minY: math.MaxFloat32,
		maxX: -math.MaxFloat32, maxY: -math.MaxFloat32,
	}
}

func (b *bounds) add(p ContourPoint) {
	b.minX, b.minY = min(b.minX, p.X), min(b.minY, p.Y)
	b.maxX, b.maxY = max(b.maxX, p.X), max(b.maxY, p.Y)
}

func (b bounds) empty() bool {
	return b.minX >= b.maxX || b.minY >= b.maxY
}

// extents converts the box to extents, multiplying by sx and sy.
// Empty boxes result in zero extents.
func (b bounds) extents(sx, sy float32) Extents {
	if b.empty() {
		return Extents{}
	}
	return Extents{
		XBearing: b.minX * sx,
		YBearing: b.maxY * sy,
		Width:    (b.maxX - b.minX) * sx,
		Height:   (b.minY - b.maxY) * sy,
	}
}

// MetricsSource provides the static metrics of glyphs, as stored in tables
// 'hmtx' and 'vmtx'. *ot.HMtxTable and *ot.VMtxTable implement it.
type MetricsSource interface {
	Metrics(gid ot.GlyphIndex) (advance uint16, bearing int16, ok bool)
}

// StaticMetrics bundles the font-wide information an Accelerator needs
// besides the glyph data.
type StaticMetrics struct {
	UnitsPerEm uint16
	Horizontal MetricsSource // may be nil
	Vertical   MetricsSource // may be nil
	AxisCount  int           // number of variation axes, 0 for static fonts
}

// Advance returns the static advance of a glyph. Without metrics, the
// horizontal advance defaults to half an em, the vertical one to a full em.
func (m StaticMetrics) Advance(gid ot.GlyphIndex, vertical bool) uint16 {
	src, dflt := m.Horizontal, m.UnitsPerEm/2
	if vertical {
		src, dflt = m.Vertical, m.UnitsPerEm
	}
	if src == nil {
		return dflt
	}
	if adv, _, ok := src.Metrics(gid); ok {
		return adv
	}
	return dflt
}

// SideBearing returns the static left or top side bearing of a glyph,
// or 0 without metrics.
func (m StaticMetrics) SideBearing(gid ot.GlyphIndex, vertical bool) int16 {
	src := m.Horizontal
	if vertical {
		src = m.Vertical
	}
	if src == nil {
		return 0
	}
	_, sb, _ := src.Metrics(gid)
	return sb
}

// phantomPoints computes the phantom points of a glyph from its header
// and its static metrics.
func (m StaticMetrics) phantomPoints(g Glyph) [PhantomCount]ContourPoint {
	h := g.Header()
	var ph [PhantomCount]ContourPoint
	hDelta := float32(h.XMin) - float32(m.SideBearing(g.gid, false))
	ph[PhantomLeft].X = hDelta
	ph[PhantomRight].X = float32(m.Advance(g.gid, false)) + hDelta
	vOrig := float32(h.YMax) + float32(m.SideBearing(g.gid, true))
	ph[PhantomTop].Y = vOrig
	ph[PhantomBottom].Y = vOrig - float32(m.Advance(g.gid, true))
	return ph
}

// clampAdvance rounds an advance and keeps it within [0, MaxUint32/2].
func clampAdvance(v float32) uint32 {
	r := math.Round(float64(v))
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	if r > math.MaxUint32/2 {
		return math.MaxUint32 / 2
	}
	return uint32(r)
}
