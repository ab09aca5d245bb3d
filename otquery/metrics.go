package otquery

import (
	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontType returns "TrueType" for fonts with TrueType outlines and "CFF"
// for fonts with PostScript outlines.
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return ""
	}
	switch {
	case otf.Header.FontType == 0x4f54544f, otf.Table(ot.T("CFF ")) != nil:
		return "CFF"
	case otf.Table(ot.T("glyf")) != nil:
		return "TrueType"
	}
	return "unknown"
}

// outlineTags are the tables concerned with TrueType outlines.
var outlineTags = []string{
	"head", "maxp", "loca", "glyf", "hhea", "hmtx", "vhea", "vmtx",
	"gvar", "fvar", "cvt ", "fpgm", "prep", "gasp",
}

// OutlineTables lists the tables of a font concerned with TrueType outlines,
// metrics and hinting.
func OutlineTables(otf *ot.Font) []string {
	var tables []string
	for _, tag := range outlineTags {
		if otf.Table(ot.T(tag)) != nil {
			tables = append(tables, tag)
		}
	}
	return tables
}

// FontMetrics retrieves selected metrics of a font.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if otf == nil {
		return metrics
	}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2, ok := rawTable(otf, "OS/2", 78); ok {
			tracer().Debugf("OS/2")
			a := sfnt.Units(i16(os2[68:])) // sTypoAscender
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(i16(os2[70:])) // sTypoDescender
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
			metrics.LineGap = sfnt.Units(i16(os2[72:]))
		}
	}
	metrics.UnitsPerEm = sfnt.Units(otf.UnitsPerEm())
	return metrics
}

// LocaInfo describes the glyph data of a font as seen through an outline
// accelerator. It returns false if the font has no accessible outlines.
func LocaInfo(otf *ot.Font, acc *glyf.Accelerator) (LocaTableInfo, bool) {
	var info LocaTableInfo
	store := glyf.OpenStore(otf)
	if store.GlyphCount() == 0 || acc == nil {
		return info, false
	}
	index := store.Index()
	info.Long = index.IsLong()
	info.Entries = index.Len()
	info.GlyphCount = acc.GlyphCount()
	if t := otf.Table(ot.T("glyf")); t != nil {
		info.GlyfSize = len(t.Binary())
	}
	for gid := range info.GlyphCount {
		switch acc.Glyph(ot.GlyphIndex(gid)).Kind() {
		case glyf.Simple:
			info.Simple++
		case glyf.Composite:
			info.Composite++
		default:
			info.Empty++
		}
	}
	return info, true
}

// --- Glyph Routines --------------------------------------------------------

// GlyphMetrics retrieves metrics for a given glyph of the default instance
// of a font.
func GlyphMetrics(acc *glyf.Accelerator, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	if acc == nil || int(gid) >= acc.GlyphCount() {
		return metrics
	}
	static := acc.Metrics()
	metrics.Advance = sfnt.Units(static.Advance(gid, false))
	metrics.LSB = sfnt.Units(static.SideBearing(gid, false))
	metrics.VAdvance = sfnt.Units(static.Advance(gid, true))
	metrics.TSB = sfnt.Units(static.SideBearing(gid, true))
	//
	// glyph header: bounding box
	g := acc.Glyph(gid)
	metrics.Kind = g.Kind()
	h := g.Header()
	metrics.BBox = BoundingBox{
		MinX: sfnt.Units(h.XMin),
		MinY: sfnt.Units(h.YMin),
		MaxX: sfnt.Units(h.XMax),
		MaxY: sfnt.Units(h.YMax),
	}
	switch g.Kind() {
	case glyf.Simple:
		metrics.Contours = int(h.NumberOfContours)
	case glyf.Composite:
		for range g.Components() {
			metrics.Components++
		}
	}
	if points, ok := acc.Points(nil, gid); ok {
		metrics.Points = len(points) - glyf.PhantomCount
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing
	// indicated in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.IsEmpty() { // leave RSB for empty bboxes
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// GlyphExtents returns the ink box of a glyph for an instance of a font,
// in font units. The scale of inst is ignored.
func GlyphExtents(acc *glyf.Accelerator, inst *glyf.Instance, gid ot.GlyphIndex) (BoundingBox, bool) {
	if acc == nil {
		return BoundingBox{}, false
	}
	if inst != nil {
		inst = &glyf.Instance{Coords: inst.Coords, Deltas: inst.Deltas}
	}
	ext, ok := acc.Extents(inst, gid)
	if !ok {
		return BoundingBox{}, false
	}
	bbox := BoundingBox{
		MinX: sfnt.Units(ext.XBearing),
		MaxY: sfnt.Units(ext.YBearing),
	}
	bbox.MaxX = bbox.MinX + sfnt.Units(ext.Width)
	bbox.MinY = bbox.MaxY + sfnt.Units(ext.Height)
	return bbox, true
}
