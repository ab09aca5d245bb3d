/*
Package fonttest synthesizes TrueType glyph records and minimal fonts for tests.

Fonts produced here contain tables 'head', 'maxp', 'hhea', 'hmtx', 'loca' and
'glyf', optionally 'vhea', 'vmtx' and a 'gvar' header. They are assembled with
ot.FontBuilder, therefore carry valid checksums and parse with ot.Parse.
*/
package fonttest

import (
	"encoding/binary"
	"math"

	"github.com/npillmayer/outline/ot"
)

// Point is a contour point of a synthetic simple glyph.
type Point struct {
	X, Y int16
	On   bool
}

// Glyph flag bits of simple glyphs.
const (
	flagOnCurve    = 0x01
	flagXShort     = 0x02
	flagYShort     = 0x04
	flagRepeat     = 0x08
	flagXSameOrPos = 0x10
	flagYSameOrPos = 0x20
)

// Component flag bits of composite glyphs.
const (
	ArgsAreWords            = 0x0001
	ArgsAreXYValues         = 0x0002
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

// SimpleGlyph encodes a simple glyph with the given contours and hinting
// instructions. Coordinates are encoded as compactly as the format allows,
// runs of identical flags are compressed with the repeat flag.
func SimpleGlyph(contours [][]Point, instructions []byte) []byte {
	var pts []Point
	var ends []int
	for _, c := range contours {
		pts = append(pts, c...)
		ends = append(ends, len(pts)-1)
	}
	out := header(int16(len(contours)), bbox(pts))
	for _, e := range ends {
		out = be16(out, uint16(e))
	}
	out = be16(out, uint16(len(instructions)))
	out = append(out, instructions...)
	flags := make([]byte, len(pts))
	var xs, ys []byte
	var px, py int16
	for i, p := range pts {
		var f byte
		if p.On {
			f |= flagOnCurve
		}
		f, xs = encodeCoord(f, xs, p.X-px, flagXShort, flagXSameOrPos)
		f, ys = encodeCoord(f, ys, p.Y-py, flagYShort, flagYSameOrPos)
		flags[i] = f
		px, py = p.X, p.Y
	}
	for i := 0; i < len(flags); {
		j := i + 1
		for j < len(flags) && flags[j] == flags[i] && j-i <= 255 {
			j++
		}
		if j-i > 2 {
			out = append(out, flags[i]|flagRepeat, byte(j-i-1))
		} else {
			for k := i; k < j; k++ {
				out = append(out, flags[k])
			}
		}
		i = j
	}
	out = append(out, xs...)
	return append(out, ys...)
}

func encodeCoord(f byte, buf []byte, d int16, short, same byte) (byte, []byte) {
	switch {
	case d == 0:
		return f | same, buf
	case d > 0 && d < 256:
		return f | short | same, append(buf, byte(d))
	case d < 0 && d > -256:
		return f | short, append(buf, byte(-d))
	}
	return f, be16(buf, uint16(d))
}

// Component is a component record of a synthetic composite glyph.
type Component struct {
	Glyph  uint16
	Flags  uint16    // additional flags; argument size, scale and continuation flags are set automatically
	Arg1   int16     // x offset, or parent point index of an anchored component
	Arg2   int16     // y offset, or child point index of an anchored component
	Anchor bool      // arguments are point indices
	Scale  []float64 // none, 1, 2 or 4 values
}

// CompositeGlyph encodes a composite glyph. If instructions is non-nil, the
// last component carries the instructions flag and instructions are appended.
// The bounding box of the header is set to bb.
func CompositeGlyph(components []Component, instructions []byte, bb [4]int16) []byte {
	out := header(-1, bb)
	for i, c := range components {
		flags := c.Flags
		words := c.Arg1 < -128 || c.Arg1 > 127 || c.Arg2 < -128 || c.Arg2 > 127
		if c.Anchor {
			words = c.Arg1 < 0 || c.Arg1 > 255 || c.Arg2 < 0 || c.Arg2 > 255
		} else {
			flags |= ArgsAreXYValues
		}
		if words {
			flags |= ArgsAreWords
		}
		switch len(c.Scale) {
		case 1:
			flags |= WeHaveAScale
		case 2:
			flags |= WeHaveAnXAndYScale
		case 4:
			flags |= WeHaveATwoByTwo
		}
		if i < len(components)-1 {
			flags |= MoreComponents
		} else if instructions != nil {
			flags |= WeHaveInstructions
		}
		out = be16(out, flags)
		out = be16(out, c.Glyph)
		if words {
			out = be16(out, uint16(c.Arg1))
			out = be16(out, uint16(c.Arg2))
		} else {
			out = append(out, byte(int8(c.Arg1)), byte(int8(c.Arg2)))
		}
		for _, s := range c.Scale {
			out = be16(out, uint16(F2Dot14(s)))
		}
	}
	if instructions != nil {
		out = be16(out, uint16(len(instructions)))
		out = append(out, instructions...)
	}
	return out
}

// F2Dot14 converts a float to the 2.14 fixed point format.
func F2Dot14(f float64) int16 {
	return int16(math.Round(f * 16384))
}

func header(contours int16, bb [4]int16) []byte {
	out := make([]byte, 0, 64)
	out = be16(out, uint16(contours))
	for _, v := range bb {
		out = be16(out, uint16(v))
	}
	return out
}

func bbox(pts []Point) [4]int16 {
	if len(pts) == 0 {
		return [4]int16{}
	}
	bb := [4]int16{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		bb[0] = min(bb[0], p.X)
		bb[1] = min(bb[1], p.Y)
		bb[2] = max(bb[2], p.X)
		bb[3] = max(bb[3], p.Y)
	}
	return bb
}

// BBox returns xMin, yMin, xMax, yMax of an encoded glyph, or zeros for an
// empty glyph.
func BBox(glyph []byte) [4]int16 {
	if len(glyph) < 10 {
		return [4]int16{}
	}
	var bb [4]int16
	for i := range bb {
		bb[i] = int16(binary.BigEndian.Uint16(glyph[2+2*i:]))
	}
	return bb
}

func be16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func be32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// --- Fonts -----------------------------------------------------------------

// Font describes a synthetic font.
type Font struct {
	Glyphs     [][]byte // encoded glyph records, nil for an empty glyph
	UnitsPerEm uint16   // defaults to 1000
	Advances   []uint16 // horizontal advances, default UnitsPerEm/2
	LongLoca   bool     // write loca with 32 bit entries
	Padding    int      // number of zero bytes appended to every non-empty glyph record
	NoHMtx     bool     // omit 'hhea' and 'hmtx'
	Vertical   []uint16 // vertical advances; if set, 'vhea' and 'vmtx' are written
	TopBearing []int16  // top side bearings, default 0
	AxisCount  int      // if > 0, a 'gvar' header is written
	Extra      map[ot.Tag][]byte
}

// LocaData returns the loca and glyf tables of f.
func (f Font) LocaData() (loca, glyf []byte) {
	offsets := make([]uint32, 0, len(f.Glyphs)+1)
	for _, g := range f.Glyphs {
		offsets = append(offsets, uint32(len(glyf)))
		if len(g) == 0 {
			continue
		}
		glyf = append(glyf, g...)
		glyf = append(glyf, make([]byte, f.Padding)...)
		if !f.LongLoca && len(glyf)%2 == 1 {
			glyf = append(glyf, 0)
		}
	}
	offsets = append(offsets, uint32(len(glyf)))
	for _, o := range offsets {
		if f.LongLoca {
			loca = be32(loca, o)
		} else {
			loca = be16(loca, uint16(o/2))
		}
	}
	return loca, glyf
}

// Build creates the font binary.
func (f Font) Build() []byte {
	upem := f.UnitsPerEm
	if upem == 0 {
		upem = 1000
	}
	n := len(f.Glyphs)
	fb := ot.NewFontBuilder()
	loca, glyf := f.LocaData()
	fb.AddTable(ot.T("loca"), loca)
	fb.AddTable(ot.T("glyf"), glyf)
	fb.AddTable(ot.T("head"), Head(upem, f.LongLoca))
	fb.AddTable(ot.T("maxp"), MaxP(n))
	if !f.NoHMtx {
		var hmtx []byte
		for i, g := range f.Glyphs {
			adv := upem / 2
			if i < len(f.Advances) {
				adv = f.Advances[i]
			}
			hmtx = be16(hmtx, adv)
			hmtx = be16(hmtx, uint16(BBox(g)[0]))
		}
		fb.AddTable(ot.T("hhea"), MetricsHeader(n))
		fb.AddTable(ot.T("hmtx"), hmtx)
	}
	if f.Vertical != nil {
		var vmtx []byte
		for i := range f.Glyphs {
			var adv uint16
			if i < len(f.Vertical) {
				adv = f.Vertical[i]
			}
			var tsb int16
			if i < len(f.TopBearing) {
				tsb = f.TopBearing[i]
			}
			vmtx = be16(vmtx, adv)
			vmtx = be16(vmtx, uint16(tsb))
		}
		fb.AddTable(ot.T("vhea"), MetricsHeader(n))
		fb.AddTable(ot.T("vmtx"), vmtx)
	}
	if f.AxisCount > 0 {
		gvar := make([]byte, 20)
		binary.BigEndian.PutUint16(gvar[0:], 1)
		binary.BigEndian.PutUint16(gvar[4:], uint16(f.AxisCount))
		binary.BigEndian.PutUint16(gvar[12:], uint16(n))
		gvar = append(gvar, make([]byte, 2*(n+1))...)
		fb.AddTable(ot.T("gvar"), gvar)
	}
	for tag, data := range f.Extra {
		fb.AddTable(tag, data)
	}
	b, err := fb.Build()
	if err != nil {
		panic(err)
	}
	return b
}

// Head creates a 'head' table.
func Head(upem uint16, longLoca bool) []byte {
	h := make([]byte, 54)
	binary.BigEndian.PutUint32(h[0:], 0x00010000)
	binary.BigEndian.PutUint32(h[12:], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(h[18:], upem)
	if longLoca {
		binary.BigEndian.PutUint16(h[50:], 1)
	}
	return h
}

// MaxP creates a version 1.0 'maxp' table.
func MaxP(numGlyphs int) []byte {
	m := make([]byte, 32)
	binary.BigEndian.PutUint32(m[0:], 0x00010000)
	binary.BigEndian.PutUint16(m[4:], uint16(numGlyphs))
	binary.BigEndian.PutUint16(m[14:], 2) // maxZones
	binary.BigEndian.PutUint16(m[20:], 4) // maxFunctionDefs
	binary.BigEndian.PutUint16(m[26:], 9) // maxSizeOfInstructions
	return m
}

// MetricsHeader creates a 'hhea' or 'vhea' table with one long metric per glyph.
func MetricsHeader(numLong int) []byte {
	h := make([]byte, 36)
	binary.BigEndian.PutUint32(h[0:], 0x00010000)
	binary.BigEndian.PutUint16(h[4:], 800)
	binary.BigEndian.PutUint16(h[6:], uint16(0xFF38)) // -200
	binary.BigEndian.PutUint16(h[34:], uint16(numLong))
	return h
}

// Square returns the contour of an axis-aligned square with on-curve corners.
func Square(x, y, size int16) []Point {
	return []Point{{x, y, true}, {x, y + size, true}, {x + size, y + size, true}, {x + size, y, true}}
}
