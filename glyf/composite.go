package glyf

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/npillmayer/outline/ot"
)

// Flags of composite glyph component records.
const (
	ArgsAreWords            = 0x0001
	ArgsAreXYValues         = 0x0002
	RoundXYToGrid           = 0x0004
	WeHaveAScale            = 0x0008
	MoreComponents          = 0x0020
	WeHaveAnXAndYScale      = 0x0040
	WeHaveATwoByTwo         = 0x0080
	WeHaveInstructions      = 0x0100
	UseMyMetrics            = 0x0200
	OverlapCompound         = 0x0400
	ScaledComponentOffset   = 0x0800
	UnscaledComponentOffset = 0x1000
)

// componentMinSize is the size of flags and glyph index.
const componentMinSize = 4

// Component is a decoded component record of a composite glyph.
type Component struct {
	Offset     int // offset of the record within the glyph data
	Flags      uint16
	GlyphIndex ot.GlyphIndex
	Arg1, Arg2 int32      // offsets, or point indices for anchored components
	Matrix     [4]float32 // xx, xy, yx, yy; identity if no scale is present
	size       int
}

// Size returns the record size in bytes.
func (c Component) Size() int {
	return c.size
}

// IsAnchored is true if the component is positioned by matching points
// instead of by an offset.
func (c Component) IsAnchored() bool {
	return c.Flags&ArgsAreXYValues == 0
}

// HasInstructions is true if instructions follow the component records.
// The flag is only meaningful for the last component.
func (c Component) HasInstructions() bool {
	return c.Flags&WeHaveInstructions != 0
}

// AnchorPoints returns the index of the matching point in the parent's
// points and the index of the point within the component.
func (c Component) AnchorPoints() (parent, child int) {
	return int(c.Arg1), int(c.Arg2)
}

// HasTransform is true if the component carries a scale or 2×2 matrix.
func (c Component) HasTransform() bool {
	return c.Flags&(WeHaveAScale|WeHaveAnXAndYScale|WeHaveATwoByTwo) != 0
}

func (c Component) String() string {
	return fmt.Sprintf("component(glyph=%d, flags=%#04x, args=(%d,%d))", c.GlyphIndex, c.Flags, c.Arg1, c.Arg2)
}

// componentSize returns the record size implied by flags.
func componentSize(flags uint16) int {
	size := componentMinSize
	if flags&ArgsAreWords != 0 {
		size += 4
	} else {
		size += 2
	}
	switch {
	case flags&WeHaveAScale != 0:
		size += 2
	case flags&WeHaveAnXAndYScale != 0:
		size += 4
	case flags&WeHaveATwoByTwo != 0:
		size += 8
	}
	return size
}

// parseComponent decodes the component record at offset. It returns false if
// the record does not fit into data.
func parseComponent(data []byte, offset int) (Component, bool) {
	if offset < 0 || offset+componentMinSize > len(data) {
		return Component{}, false
	}
	c := Component{Offset: offset}
	c.Flags = binary.BigEndian.Uint16(data[offset:])
	c.size = componentSize(c.Flags)
	if offset+c.size > len(data) {
		return Component{}, false
	}
	c.GlyphIndex = ot.GlyphIndex(binary.BigEndian.Uint16(data[offset+2:]))
	p := offset + 4
	anchored := c.Flags&ArgsAreXYValues == 0
	if c.Flags&ArgsAreWords != 0 {
		if anchored {
			c.Arg1 = int32(binary.BigEndian.Uint16(data[p:]))
			c.Arg2 = int32(binary.BigEndian.Uint16(data[p+2:]))
		} else {
			c.Arg1 = int32(int16(binary.BigEndian.Uint16(data[p:])))
			c.Arg2 = int32(int16(binary.BigEndian.Uint16(data[p+2:])))
		}
		p += 4
	} else {
		if anchored {
			c.Arg1, c.Arg2 = int32(data[p]), int32(data[p+1])
		} else {
			c.Arg1, c.Arg2 = int32(int8(data[p])), int32(int8(data[p+1]))
		}
		p += 2
	}
	c.Matrix = [4]float32{1, 0, 0, 1}
	switch {
	case c.Flags&WeHaveAScale != 0:
		s := f2dot14(data[p:])
		c.Matrix[0], c.Matrix[3] = s, s
	case c.Flags&WeHaveAnXAndYScale != 0:
		c.Matrix[0] = f2dot14(data[p:])
		c.Matrix[3] = f2dot14(data[p+2:])
	case c.Flags&WeHaveATwoByTwo != 0:
		for i := range 4 {
			c.Matrix[i] = f2dot14(data[p+2*i:])
		}
	}
	return c, true
}

func f2dot14(b []byte) float32 {
	return float32(int16(binary.BigEndian.Uint16(b))) / 16384
}

// componentsOf iterates over the component records of composite glyph data.
// Iteration stops at the first record not fitting into data, or after the
// record without the MoreComponents flag.
func componentsOf(data []byte) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		offset := headerSize
		for {
			c, ok := parseComponent(data, offset)
			if !ok {
				if offset < len(data) {
					tracer().Debugf("composite glyph: truncated component record at %d", offset)
				}
				return
			}
			if !yield(c) || c.Flags&MoreComponents == 0 {
				return
			}
			offset += c.size
		}
	}
}

// Components iterates over the components of a composite glyph.
// For other kinds of glyphs the sequence is empty.
func (g Glyph) Components() iter.Seq[Component] {
	if g.kind != Composite {
		return func(func(Component) bool) {}
	}
	return componentsOf(g.data)
}

// compositeInstructionsLength returns the number of bytes following the last
// component record if that record has the instructions flag set. This covers
// the instruction length field, the instructions and any trailing bytes.
func compositeInstructionsLength(data []byte) int {
	var last Component
	found := false
	for c := range componentsOf(data) {
		last, found = c, true
	}
	if !found || !last.HasInstructions() {
		return 0
	}
	start := last.Offset + last.size
	if start > len(data) {
		return 0
	}
	return len(data) - start
}

// translation returns the offset of a component positioned by offset.
// It is zero for anchored components.
func (c Component) translation() (dx, dy float32) {
	if c.IsAnchored() {
		return 0, 0
	}
	return float32(c.Arg1), float32(c.Arg2)
}

// transformPoints applies the component's matrix and offset to points.
// If the offset is to be scaled, it is applied before the matrix. A record
// with both offset flags set is treated as unscaled.
func (c Component) transformPoints(points []ContourPoint) {
	dx, dy := c.translation()
	translate := dx != 0 || dy != 0
	scale := c.HasTransform()
	if !translate && !scale {
		return
	}
	if translate && c.Flags&(ScaledComponentOffset|UnscaledComponentOffset) == ScaledComponentOffset {
		translatePoints(points, dx, dy)
		transformPoints(points, c.Matrix)
		return
	}
	if scale {
		transformPoints(points, c.Matrix)
	}
	if translate {
		translatePoints(points, dx, dy)
	}
}

func transformPoints(points []ContourPoint, m [4]float32) {
	for i := range points {
		x, y := points[i].X, points[i].Y
		points[i].X = x*m[0] + y*m[2]
		points[i].Y = x*m[1] + y*m[3]
	}
}

func translatePoints(points []ContourPoint, dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	for i := range points {
		points[i].X += dx
		points[i].Y += dy
	}
}
