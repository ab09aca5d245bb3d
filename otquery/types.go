package otquery

import (
	"fmt"

	"github.com/npillmayer/outline/glyf"
	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hhea' table
	LineGap         sfnt.Units // typographic line gap
}

// GlyphMetricsInfo contains all metric information for a glyph.
type GlyphMetricsInfo struct {
	Kind          glyf.Kind   // kind of glyph record
	Advance       sfnt.Units  // advance width
	LSB, RSB      sfnt.Units  // side bearings
	VAdvance, TSB sfnt.Units  // vertical advance and top side bearing
	BBox          BoundingBox // bounding box
	Contours      int         // number of contours of a simple glyph
	Points        int         // number of outline points, without phantom points
	Components    int         // number of components of a composite glyph
}

func (m GlyphMetricsInfo) String() string {
	return fmt.Sprintf("%s glyph: advance=%d lsb=%d rsb=%d bbox=%v", m.Kind, m.Advance, m.LSB, m.RSB, m.BBox)
}

// BoundingBox describes the bounding box of a glyph.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty reports whether this box has zero area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}

func (bbox BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)
}

// LocaTableInfo describes the glyph data of a font.
type LocaTableInfo struct {
	Long       bool // 32-bit offsets
	Entries    int  // number of entries of table 'loca'
	GlyphCount int  // number of glyphs with accessible outlines
	GlyfSize   int  // size of table 'glyf' in bytes
	Empty      int  // number of glyphs without outline
	Simple     int  // number of simple glyphs
	Composite  int  // number of composite glyphs
}
