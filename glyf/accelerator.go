package glyf

import (
	"math"

	"github.com/npillmayer/outline/ot"
)

// Accelerator provides outlines and metrics for the glyphs of a font.
// It is read-only after creation and safe for concurrent use.
type Accelerator struct {
	src     Source
	metrics StaticMetrics
}

// New creates an accelerator for a parsed font. If the font has no
// TrueType outlines, or its 'head' table announces an unknown loca or glyph
// data format, the accelerator reports zero glyphs.
func New(otf *ot.Font) *Accelerator {
	m := StaticMetrics{UnitsPerEm: otf.UnitsPerEm()}
	if otf.HMtx != nil {
		m.Horizontal = otf.HMtx
	}
	if otf.VMtx != nil {
		m.Vertical = otf.VMtx
	}
	if otf.GVar != nil {
		m.AxisCount = otf.GVar.AxisCount
	}
	return NewAccelerator(OpenStore(otf), m)
}

// OpenStore creates an outline store for the tables 'loca' and 'glyf' of a
// font. If these are missing or unusable, the store is empty.
func OpenStore(otf *ot.Font) *OutlineStore {
	empty := &OutlineStore{}
	head := otf.Head
	if head == nil {
		return empty
	}
	if head.IndexToLocFormat > 1 || head.GlyphDataFormat > 0 {
		tracer().Infof("unsupported glyph data: indexToLocFormat=%d, glyphDataFormat=%d",
			head.IndexToLocFormat, head.GlyphDataFormat)
		return empty
	}
	loca, glyf := otf.Table(ot.T("loca")), otf.Table(ot.T("glyf"))
	if loca == nil || glyf == nil {
		tracer().Debugf("font has no TrueType outlines")
		return empty
	}
	index := NewIndexTable(loca.Binary(), head.IndexToLocFormat == 1)
	return NewOutlineStore(index, glyf.Binary(), otf.NumGlyphs())
}

// NewAccelerator creates an accelerator for glyphs located by src.
func NewAccelerator(src Source, m StaticMetrics) *Accelerator {
	if m.UnitsPerEm == 0 {
		m.UnitsPerEm = 1000
	}
	return &Accelerator{src: src, metrics: m}
}

// GlyphCount returns the number of glyphs with outline data.
func (a *Accelerator) GlyphCount() int {
	return a.src.GlyphCount()
}

// Source returns the glyph source of the accelerator.
func (a *Accelerator) Source() Source {
	return a.src
}

// Metrics returns the static metrics of the accelerator.
func (a *Accelerator) Metrics() StaticMetrics {
	return a.metrics
}

// Glyph returns glyph gid. Glyphs which are absent are returned as empty glyphs.
func (a *Accelerator) Glyph(gid ot.GlyphIndex) Glyph {
	return GlyphFor(a.src, gid, false)
}

// GlyphTrimmed returns glyph gid with trailing padding removed.
func (a *Accelerator) GlyphTrimmed(gid ot.GlyphIndex) Glyph {
	return GlyphFor(a.src, gid, true)
}

// isVariable is true if inst selects a non-default instance matching the
// font's variation axes.
func (a *Accelerator) isVariable(inst *Instance) bool {
	return inst != nil && len(inst.Coords) > 0 && a.metrics.AxisCount > 0 &&
		len(inst.Coords) == a.metrics.AxisCount
}

// Points returns the contour points of glyph gid for an instance, followed
// by the four phantom points. Points of composite glyphs are resolved into
// the points of their components. Points returns false for glyphs which
// cannot be decoded.
func (a *Accelerator) Points(inst *Instance, gid ot.GlyphIndex) ([]ContourPoint, bool) {
	if int(gid) >= a.GlyphCount() {
		return nil, false
	}
	points, err := a.glyphPoints(inst, a.Glyph(gid), false, 0, new(int))
	if err != nil {
		tracer().Infof("glyph %d: %v", gid, err)
		return nil, false
	}
	return points, true
}

// glyphPoints assembles the points of a glyph, including its phantom points.
// ops counts the components resolved for the whole query.
func (a *Accelerator) glyphPoints(inst *Instance, g Glyph, phantomOnly bool, depth int, ops *int) ([]ContourPoint, error) {
	if depth > maxNestingLevel {
		return nil, errNestingTooDeep
	}
	var points []ContourPoint
	switch g.Kind() {
	case Simple:
		var err error
		if points, err = decodeSimplePoints(g.data, phantomOnly); err != nil {
			return nil, err
		}
	case Composite:
		// one pseudo point per component, receiving the component's deltas
		n := 0
		for range g.Components() {
			n++
		}
		points = make([]ContourPoint, n, n+PhantomCount)
	}
	phantoms := a.metrics.phantomPoints(g)
	points = append(points, phantoms[:]...)
	if a.isVariable(inst) && inst.Deltas != nil {
		if !inst.Deltas.ApplyDeltas(g.gid, inst.Coords, points) {
			return nil, errDeltasFailed
		}
	}
	if g.Kind() != Composite {
		return points, nil
	}
	copy(phantoms[:], points[len(points)-PhantomCount:])
	var all []ContourPoint
	i := 0
	for c := range g.Components() {
		if *ops++; *ops > maxComponentOperations {
			return nil, errTooManyComponents
		}
		child, err := a.glyphPoints(inst, a.Glyph(c.GlyphIndex), phantomOnly, depth+1, ops)
		if err != nil {
			return nil, err
		}
		n := len(child) - PhantomCount
		if c.Flags&UseMyMetrics != 0 {
			copy(phantoms[:], child[n:])
		}
		c.transformPoints(child)
		translatePoints(child, points[i].X, points[i].Y)
		if c.IsAnchored() {
			p1, p2 := c.AnchorPoints()
			if p1 < len(all) && p2 < n {
				translatePoints(child, all[p1].X-child[p2].X, all[p1].Y-child[p2].Y)
			} else {
				tracer().Debugf("glyph %d: anchor points (%d,%d) out of range", g.gid, p1, p2)
			}
		}
		all = append(all, child[:n]...)
		i++
	}
	return append(all, phantoms[:]...), nil
}

// DrawPath draws the outline of glyph gid to pen. It returns false if the
// glyph cannot be decoded; nothing is drawn then.
func (a *Accelerator) DrawPath(inst *Instance, gid ot.GlyphIndex, pen Pen) bool {
	points, ok := a.Points(inst, gid)
	if !ok {
		return false
	}
	sx, sy := inst.scale(a.metrics.UnitsPerEm)
	NewPathBuilder(pen, sx, sy).ConsumePoints(points[:len(points)-PhantomCount])
	return true
}

// Path returns the outline of glyph gid.
func (a *Accelerator) Path(inst *Instance, gid ot.GlyphIndex) (*Path, bool) {
	path := &Path{}
	if !a.DrawPath(inst, gid, path) {
		return nil, false
	}
	return path, true
}

// Extents returns the ink box of glyph gid. For the default instance, the
// box is taken from the glyph header, with the left side bearing from
// 'hmtx' as x bearing. For variable instances it is computed from the
// glyph's points.
func (a *Accelerator) Extents(inst *Instance, gid ot.GlyphIndex) (Extents, bool) {
	if int(gid) >= a.GlyphCount() {
		return Extents{}, false
	}
	sx, sy := inst.scale(a.metrics.UnitsPerEm)
	if !a.isVariable(inst) {
		g := a.Glyph(gid)
		if g.IsEmpty() {
			return Extents{}, true
		}
		h := g.Header()
		return Extents{
			XBearing: float32(a.metrics.SideBearing(gid, false)) * sx,
			YBearing: float32(max(h.YMin, h.YMax)) * sy,
			Width:    float32(int32(max(h.XMin, h.XMax))-int32(min(h.XMin, h.XMax))) * sx,
			Height:   float32(int32(min(h.YMin, h.YMax))-int32(max(h.YMin, h.YMax))) * sy,
		}, true
	}
	points, ok := a.Points(inst, gid)
	if !ok {
		return Extents{}, false
	}
	return pointBounds(points).extents(sx, sy), true
}

func pointBounds(points []ContourPoint) bounds {
	b := newBounds()
	for _, p := range points[:len(points)-PhantomCount] {
		b.add(p)
	}
	return b
}

// AdvanceVar returns the advance of glyph gid for an instance, in font
// units. For the default instance, or if the variable advance cannot be
// computed, the static advance is returned. Glyphs without outline data
// have an advance of 0.
func (a *Accelerator) AdvanceVar(inst *Instance, gid ot.GlyphIndex, vertical bool) uint32 {
	if int(gid) >= a.GlyphCount() {
		return 0
	}
	if !a.isVariable(inst) {
		return uint32(a.metrics.Advance(gid, vertical))
	}
	points, err := a.glyphPoints(inst, a.Glyph(gid), true, 0, new(int))
	if err != nil {
		tracer().Debugf("glyph %d: %v; using static advance", gid, err)
		return uint32(a.metrics.Advance(gid, vertical))
	}
	ph := points[len(points)-PhantomCount:]
	if vertical {
		return clampAdvance(ph[PhantomTop].Y - ph[PhantomBottom].Y)
	}
	return clampAdvance(ph[PhantomRight].X - ph[PhantomLeft].X)
}

// SideBearingVar returns the left (or top) side bearing of glyph gid for an
// instance, in font units. For the default instance, or if the variable
// bearing cannot be computed, the static bearing is returned.
func (a *Accelerator) SideBearingVar(inst *Instance, gid ot.GlyphIndex, vertical bool) int32 {
	if int(gid) >= a.GlyphCount() {
		return 0
	}
	if !a.isVariable(inst) {
		return int32(a.metrics.SideBearing(gid, vertical))
	}
	points, err := a.glyphPoints(inst, a.Glyph(gid), false, 0, new(int))
	if err != nil {
		tracer().Debugf("glyph %d: %v; using static side bearing", gid, err)
		return int32(a.metrics.SideBearing(gid, vertical))
	}
	ph := points[len(points)-PhantomCount:]
	if vertical {
		ext := pointBounds(points).extents(1, 1)
		return int32(math.Ceil(float64(ph[PhantomTop].Y))) - int32(ext.YBearing)
	}
	return int32(math.Floor(float64(ph[PhantomLeft].X)))
}
